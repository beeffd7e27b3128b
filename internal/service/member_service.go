package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"m42hub/internal/dto"
	"m42hub/internal/mapper"
	"m42hub/internal/model"
)

// MemberEvent is the outbox payload of a membership transition.
type MemberEvent struct {
	EventID   string    `json:"event_id"`
	Event     string    `json:"event"`
	MemberID  uint64    `json:"member_id"`
	ProjectID uint64    `json:"project_id"`
	UserID    uint64    `json:"user_id"`
	ActorID   uint64    `json:"actor_id"`
	Feedback  string    `json:"feedback,omitempty"`
	EventTime time.Time `json:"event_time"`
}

func newOutbox(event string, m *model.Member, actorID uint64) (*model.MemberOutbox, error) {
	ev := MemberEvent{
		EventID:   uuid.NewString(),
		Event:     event,
		MemberID:  m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		ActorID:   actorID,
		EventTime: time.Now().UTC(),
	}
	if event == model.EventRejected {
		ev.Feedback = m.ApplicationFeedback
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return &model.MemberOutbox{
		EventID:   ev.EventID,
		EventType: event,
		MemberID:  m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Payload:   string(payload),
		Status:    model.OutboxPending,
	}, nil
}

type MemberService struct {
	tx       Transactor
	members  MemberStore
	projects ProjectStore
	outbox   OutboxStore
}

func NewMemberService(tx Transactor, members MemberStore, projects ProjectStore, outbox OutboxStore) *MemberService {
	return &MemberService{tx: tx, members: members, projects: projects, outbox: outbox}
}

func (s *MemberService) List(ctx context.Context) ([]model.Member, error) {
	return s.members.List(ctx)
}

func (s *MemberService) FindByID(ctx context.Context, id uint64) (*model.Member, bool, error) {
	return s.members.FindByID(ctx, id)
}

// FindByUsername returns the memberships of a user joined with their projects.
func (s *MemberService) FindByUsername(ctx context.Context, username string) ([]model.MemberProject, error) {
	members, err := s.members.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]model.MemberProject, 0, len(members))
	if len(members) == 0 {
		return out, nil
	}

	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ProjectID)
	}
	projects, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]model.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	for _, m := range members {
		p, ok := byID[m.ProjectID]
		if !ok {
			continue
		}
		out = append(out, model.MemberProject{Member: m, Project: p})
	}
	return out, nil
}

// Save creates a membership as given by an administrator.
func (s *MemberService) Save(ctx context.Context, m *model.Member) (*model.Member, error) {
	if err := s.members.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return s.reload(ctx, m)
}

// Apply records a pending application of userID and queues an applied event.
// The applicant, status and manager flag never come from the request.
func (s *MemberService) Apply(ctx context.Context, req dto.MemberRequest, userID uint64) (*model.Member, error) {
	m := mapper.ToMemberApply(req, userID)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.members.Create(ctx, m); err != nil {
			return fmt.Errorf("create member: %w", err)
		}
		ob, err := newOutbox(model.EventApplied, m, m.UserID)
		if err != nil {
			return err
		}
		return s.outbox.Insert(ctx, ob)
	})
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, m)
}

// Approve marks the member approved by approverID. found is false, with no
// side effects, when the member does not exist.
func (s *MemberService) Approve(ctx context.Context, memberID, approverID uint64) (*model.Member, bool, error) {
	return s.decide(ctx, memberID, approverID, model.EventApproved, func(m *model.Member) {
		m.MemberStatusID = model.MemberStatusApproved
		m.ApproverID = &approverID
	})
}

// Reject marks the member rejected with feedback.
func (s *MemberService) Reject(ctx context.Context, memberID uint64, feedback string, rejecterID uint64) (*model.Member, bool, error) {
	return s.decide(ctx, memberID, rejecterID, model.EventRejected, func(m *model.Member) {
		m.MemberStatusID = model.MemberStatusRejected
		m.ApplicationFeedback = feedback
		m.RejecterID = &rejecterID
	})
}

func (s *MemberService) decide(ctx context.Context, memberID, actorID uint64, event string, apply func(*model.Member)) (*model.Member, bool, error) {
	var found bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, ok, err := s.members.FindByIDForUpdate(ctx, memberID)
		if err != nil || !ok {
			return err
		}
		found = true
		apply(m)
		if err := s.members.UpdateDecision(ctx, m); err != nil {
			return fmt.Errorf("update member: %w", err)
		}
		ob, err := newOutbox(event, m, actorID)
		if err != nil {
			return err
		}
		return s.outbox.Insert(ctx, ob)
	})
	if err != nil || !found {
		return nil, false, err
	}
	return s.members.FindByID(ctx, memberID)
}

func (s *MemberService) reload(ctx context.Context, m *model.Member) (*model.Member, error) {
	loaded, found, err := s.members.FindByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return m, nil
	}
	return loaded, nil
}

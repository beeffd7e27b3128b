package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"m42hub/internal/model"
	"m42hub/internal/pkg"
)

// Sender delivers one outbox event.
type Sender func(ctx context.Context, ob *model.MemberOutbox) error

// OutboxRelayer drains pending membership events and hands them to a Sender.
type OutboxRelayer struct {
	store     OutboxStore
	sender    Sender
	batchSize int
	maxRetry  int
	interval  time.Duration
	log       *zap.Logger
}

func NewOutboxRelayer(store OutboxStore, sender Sender, interval time.Duration, batchSize, maxRetry int, log *zap.Logger) *OutboxRelayer {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	if maxRetry <= 0 {
		maxRetry = 5
	}
	return &OutboxRelayer{
		store:     store,
		sender:    sender,
		batchSize: batchSize,
		maxRetry:  maxRetry,
		interval:  interval,
		log:       log,
	}
}

// Run drains once per interval until ctx is cancelled.
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce sends one batch and returns how many events were delivered.
func (r *OutboxRelayer) DrainOnce(ctx context.Context) int {
	rows, err := r.store.ListPending(ctx, r.batchSize, r.maxRetry)
	if err != nil {
		r.log.Error("outbox query failed", zap.Error(err))
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			r.log.Warn("outbox send failed",
				zap.String("event_id", ob.EventID), zap.Int("retry", ob.Retry), zap.Error(err))
			if err := r.store.MarkFailed(ctx, ob.ID); err != nil {
				r.log.Error("outbox mark failed", zap.Uint64("id", ob.ID), zap.Error(err))
			}
			continue
		}
		if err := r.store.MarkSent(ctx, ob.ID); err != nil {
			r.log.Error("outbox mark sent", zap.Uint64("id", ob.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// MessageProducer publishes a keyed message.
type MessageProducer interface {
	Send(ctx context.Context, key string, value []byte) error
}

// KafkaSender publishes the event payload keyed by member id.
func KafkaSender(p MessageProducer) Sender {
	return func(ctx context.Context, ob *model.MemberOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.MemberID), []byte(ob.Payload))
	}
}

// LogSender only logs; used when no broker is configured.
func LogSender(log *zap.Logger) Sender {
	return func(ctx context.Context, ob *model.MemberOutbox) error {
		log.Info("member event",
			zap.String("event", ob.EventType),
			zap.Uint64("member_id", ob.MemberID),
			zap.Uint64("project_id", ob.ProjectID),
			zap.Uint64("user_id", ob.UserID))
		return nil
	}
}

// ChainSenders delivers to each sender in order and stops at the first error.
// A failed event is retried through the whole chain, so delivery is at least
// once: senders before the failing one see the event again. Consumers dedupe
// on the event_id carried in the payload.
func ChainSenders(senders ...Sender) Sender {
	return func(ctx context.Context, ob *model.MemberOutbox) error {
		for _, send := range senders {
			if err := send(ctx, ob); err != nil {
				return err
			}
		}
		return nil
	}
}

type MailFunc func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error

// MailSender notifies applicants when their application is decided.
type MailSender struct {
	SMTP     pkg.SMTPConfig
	Users    UserStore
	Projects ProjectStore
	Mail     MailFunc
}

func (m *MailSender) Send(ctx context.Context, ob *model.MemberOutbox) error {
	if ob.EventType != model.EventApproved && ob.EventType != model.EventRejected {
		return nil
	}
	var ev MemberEvent
	if err := json.Unmarshal([]byte(ob.Payload), &ev); err != nil {
		return fmt.Errorf("decode member event: %w", err)
	}
	user, found, err := m.Users.FindByID(ctx, ob.UserID)
	if err != nil {
		return err
	}
	if !found || user.Email == "" {
		return nil
	}
	projectName := fmt.Sprintf("project #%d", ob.ProjectID)
	if p, ok, err := m.Projects.FindByID(ctx, ob.ProjectID); err != nil {
		return err
	} else if ok {
		projectName = p.Name
	}

	approved := ob.EventType == model.EventApproved
	subject := "Your application to " + projectName
	body := pkg.MembershipDecisionHTML(user.Username, projectName, approved, ev.Feedback)
	send := m.Mail
	if send == nil {
		send = pkg.SendEmail
	}
	return send(m.SMTP, user.Email, subject, body)
}

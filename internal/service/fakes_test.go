package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"m42hub/internal/model"
	"m42hub/internal/pkg"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeProjects struct {
	mu      sync.Mutex
	nextID  uint64
	rows    map[uint64]*model.Project
	patches []model.ProjectPatch
}

func newFakeProjects() *fakeProjects {
	return &fakeProjects{rows: map[uint64]*model.Project{}}
}

func (f *fakeProjects) Create(_ context.Context, p *model.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProjects) FindByID(_ context.Context, id uint64) (*model.Project, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (f *fakeProjects) FindByIDForUpdate(ctx context.Context, id uint64) (*model.Project, bool, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeProjects) FindByIDs(_ context.Context, ids []uint64) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Project
	for _, id := range ids {
		if p, ok := f.rows[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProjects) List(_ context.Context) ([]model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Project, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeProjects) ApplyPatch(_ context.Context, id uint64, patch model.ProjectPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return errors.New("no such project")
	}
	mergeProjectPatch(p, patch)
	f.patches = append(f.patches, patch)
	return nil
}

type fakeMembers struct {
	mu        sync.Mutex
	nextID    uint64
	rows      map[uint64]*model.Member
	usernames map[uint64]string
	updates   int
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{rows: map[uint64]*model.Member{}, usernames: map[uint64]string{}}
}

func (f *fakeMembers) Create(_ context.Context, m *model.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.rows[m.ID] = &cp
	return nil
}

func (f *fakeMembers) FindByID(_ context.Context, id uint64) (*model.Member, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[id]
	if !ok {
		return nil, false, nil
	}
	cp := *m
	return &cp, true, nil
}

func (f *fakeMembers) FindByIDForUpdate(ctx context.Context, id uint64) (*model.Member, bool, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeMembers) List(_ context.Context) ([]model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Member, 0, len(f.rows))
	for _, m := range f.rows {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMembers) ListByUsername(ctx context.Context, username string) ([]model.Member, error) {
	all, _ := f.List(ctx)
	var out []model.Member
	for _, m := range all {
		if f.usernames[m.UserID] == strings.ToLower(username) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembers) UpdateDecision(_ context.Context, m *model.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	cp := *m
	f.rows[m.ID] = &cp
	return nil
}

type fakeOutbox struct {
	mu     sync.Mutex
	rows   []model.MemberOutbox
	sent   []uint64
	failed []uint64
	err    error
}

func (f *fakeOutbox) Insert(_ context.Context, ob *model.MemberOutbox) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	ob.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, *ob)
	return nil
}

func (f *fakeOutbox) ListPending(_ context.Context, batchSize, maxRetry int) ([]model.MemberOutbox, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.MemberOutbox
	for _, ob := range f.rows {
		if ob.Status == model.OutboxPending || (ob.Status == model.OutboxFailed && ob.Retry < maxRetry) {
			out = append(out, ob)
		}
		if len(out) == batchSize {
			break
		}
	}
	return out, nil
}

func (f *fakeOutbox) set(id uint64, status int8) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			if status == model.OutboxFailed {
				f.rows[i].Retry++
			}
		}
	}
}

func (f *fakeOutbox) MarkFailed(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = append(f.failed, id)
	f.set(id, model.OutboxFailed)
	return nil
}

func (f *fakeOutbox) MarkSent(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, id)
	f.set(id, model.OutboxSent)
	return nil
}

type fakeUsers struct {
	mu        sync.Mutex
	nextID    uint64
	rows      map[uint64]*model.User
	passwords int
	infos     []model.UserInfoPatch
	roleSets  [][]uint64
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{rows: map[uint64]*model.User{}}
	for _, u := range users {
		f.rows[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint64) (*model.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[id]
	if !ok {
		return nil, false, nil
	}
	cp := *u
	return &cp, true, nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*model.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.Username == strings.ToLower(username) {
			cp := *u
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUsers) FindByLogin(_ context.Context, login string) (*model.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	login = strings.ToLower(login)
	for _, u := range f.rows {
		if u.Username == login || u.Email == login {
			cp := *u
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUsers) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.rows {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id uint64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passwords++
	f.rows[id].Password = hash
	return nil
}

func (f *fakeUsers) UpdateProfilePic(_ context.Context, id uint64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id].ProfilePicURL = url
	return nil
}

func (f *fakeUsers) UpdateActive(_ context.Context, id uint64, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id].IsActive = active
	return nil
}

func (f *fakeUsers) UpdateInfo(_ context.Context, id uint64, patch model.UserInfoPatch, roleIDs []uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.rows[id]
	mergeUserInfoPatch(u, patch)
	f.infos = append(f.infos, patch)
	f.roleSets = append(f.roleSets, roleIDs)
	if roleIDs != nil {
		u.InterestRoles = model.RoleRefs(roleIDs)
	}
	return nil
}

type fakeRoles struct{ known map[uint64]string }

func (f fakeRoles) FindByIDs(_ context.Context, ids []uint64) ([]model.Role, error) {
	var out []model.Role
	for _, id := range ids {
		if name, ok := f.known[id]; ok {
			out = append(out, model.Role{ID: id, Name: name})
		}
	}
	return out, nil
}

type fakeSystemRoles struct{ roles map[string]*model.SystemRole }

func (f fakeSystemRoles) FindByName(_ context.Context, name string) (*model.SystemRole, bool, error) {
	r, ok := f.roles[name]
	return r, ok, nil
}

type fakeTokens struct {
	mu       sync.Mutex
	tokens   map[uint64]string
	refreshs map[uint64]string
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[uint64]string{}, refreshs: map[uint64]string{}}
}

func (f *fakeTokens) Save(_ context.Context, id uint64, access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[id] = access
	f.refreshs[id] = refresh
	return nil
}

func (f *fakeTokens) MatchRefresh(_ context.Context, id uint64, refresh string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.refreshs[id]
	return ok && stored == refresh, nil
}

func (f *fakeTokens) Get(_ context.Context, id uint64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[id]
	if !ok {
		return "", errors.New("token not found")
	}
	return t, nil
}

func (f *fakeTokens) Extend(context.Context, uint64) error { return nil }

func (f *fakeTokens) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, id)
	delete(f.refreshs, id)
	return nil
}

// plainHasher prefixes instead of hashing and counts Hash calls.
type plainHasher struct{ hashes int }

func (h *plainHasher) Hash(password string) (string, error) {
	h.hashes++
	return "hashed:" + password, nil
}

func (h *plainHasher) Compare(hash, password string) bool {
	return hash == "hashed:"+password
}

type fakeAuthenticator struct {
	err   error
	calls []string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, username, _ string) (*model.User, error) {
	f.calls = append(f.calls, username)
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{Username: username}, nil
}

type fakeUploader struct {
	url  string
	err  error
	body string
}

func (f *fakeUploader) Upload(_ context.Context, _ string, r io.Reader, _ int64, _ string) (string, error) {
	b, _ := io.ReadAll(r)
	f.body = string(b)
	return f.url, f.err
}

type fakeIssuer struct{ n int }

func (f *fakeIssuer) GeneratePair(userID uint64, username, role string) (*pkg.Pair, error) {
	f.n++
	return &pkg.Pair{
		AccessToken:  "access-" + username + "-" + role,
		RefreshToken: "refresh-" + username,
	}, nil
}

func (f *fakeIssuer) ParseRefresh(token string) (*pkg.Claims, error) {
	if !strings.HasPrefix(token, "refresh-") {
		return nil, pkg.ErrRefreshInvalid
	}
	return &pkg.Claims{UserID: 1, Username: strings.TrimPrefix(token, "refresh-")}, nil
}

// mergeProjectPatch mirrors ProjectRepository.ApplyPatch in memory.
func mergeProjectPatch(project *model.Project, p model.ProjectPatch) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Summary != nil {
		project.Summary = *p.Summary
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.StatusID != nil {
		id := *p.StatusID
		project.StatusID = &id
		project.Status = &model.Status{ID: id}
	}
	if p.ComplexityID != nil {
		id := *p.ComplexityID
		project.ComplexityID = &id
		project.Complexity = &model.Complexity{ID: id}
	}
	if p.ImageURL != nil {
		project.ImageURL = *p.ImageURL
	}
	if p.StartDate != nil {
		d := *p.StartDate
		project.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		project.EndDate = &d
	}
	if p.ToolIDs != nil {
		project.Tools = model.ToolRefs(p.ToolIDs)
	}
	if p.TopicIDs != nil {
		project.Topics = model.TopicRefs(p.TopicIDs)
	}
	if p.UnfilledRoleIDs != nil {
		project.UnfilledRoles = model.RoleRefs(p.UnfilledRoleIDs)
	}
	if p.Discord != nil {
		project.Discord = *p.Discord
	}
	if p.Github != nil {
		project.Github = *p.Github
	}
	if p.ProjectWebsite != nil {
		project.ProjectWebsite = *p.ProjectWebsite
	}
}

// mergeUserInfoPatch mirrors the column half of UserRepository.UpdateInfo.
func mergeUserInfoPatch(u *model.User, p model.UserInfoPatch) {
	for col, v := range p.Columns() {
		s := v.(string)
		switch col {
		case "first_name":
			u.FirstName = s
		case "last_name":
			u.LastName = s
		case "biography":
			u.Biography = s
		case "discord":
			u.Discord = s
		case "linkedin":
			u.Linkedin = s
		case "github":
			u.Github = s
		case "personal_website":
			u.PersonalWebsite = s
		}
	}
}

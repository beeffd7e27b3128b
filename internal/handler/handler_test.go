package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"m42hub/internal/dto"
	"m42hub/internal/middleware"
	"m42hub/internal/model"
	"m42hub/internal/service"
)

func init() { gin.SetMode(gin.TestMode) }

// asUser stands in for AuthMiddleware.
func asUser(id uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, id)
		c.Next()
	}
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type stubProjects struct {
	created   dto.ProjectRequest
	managerID uint64
	patch     model.ProjectPatch
}

func (s *stubProjects) List(context.Context) ([]model.Project, error) {
	return []model.Project{{ID: 1, Name: "hub"}}, nil
}

func (s *stubProjects) FindByID(_ context.Context, id uint64) (*model.Project, bool, error) {
	if id != 1 {
		return nil, false, nil
	}
	return &model.Project{ID: 1, Name: "hub"}, true, nil
}

func (s *stubProjects) Create(_ context.Context, req dto.ProjectRequest, managerID uint64) (*model.Project, error) {
	s.created, s.managerID = req, managerID
	return &model.Project{ID: 2, Name: req.Name}, nil
}

func (s *stubProjects) Update(_ context.Context, id uint64, patch model.ProjectPatch) (*model.Project, bool, error) {
	s.patch = patch
	if id != 1 {
		return nil, false, nil
	}
	return &model.Project{ID: 1, Name: *patch.Name}, true, nil
}

func projectEngine(svc ProjectUsecase) *gin.Engine {
	h := NewProjectHandler(svc, zap.NewNop())
	r := gin.New()
	r.GET("/project", h.List)
	r.GET("/project/:id", h.Get)
	r.POST("/project", asUser(42), h.Create)
	r.PATCH("/project/:id", h.Update)
	return r
}

func TestProjectHandler_GetNotFoundHasEmptyBody(t *testing.T) {
	r := projectEngine(&stubProjects{})

	w := do(r, http.MethodGet, "/project/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodGet, "/project/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/project/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"members":[]`)
}

func TestProjectHandler_CreateUsesCaller(t *testing.T) {
	svc := &stubProjects{}
	r := projectEngine(svc)

	w := do(r, http.MethodPost, "/project",
		`{"name":"hub","summary":"s","statusId":1,"complexityId":1,"managerRoleId":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint64(42), svc.managerID)
	assert.Equal(t, uint64(3), svc.created.ManagerRoleID)

	w = do(r, http.MethodPost, "/project", `{"summary":"missing name"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_UpdatePartial(t *testing.T) {
	svc := &stubProjects{}
	r := projectEngine(svc)

	w := do(r, http.MethodPatch, "/project/1", `{"name":"renamed","topicIds":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.patch.Summary)
	assert.Nil(t, svc.patch.ToolIDs)
	assert.NotNil(t, svc.patch.TopicIDs)

	w = do(r, http.MethodPatch, "/project/5", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

type stubMembers struct {
	MemberUsecase
	applyUser uint64
	feedback  string
}

func (s *stubMembers) Apply(_ context.Context, req dto.MemberRequest, userID uint64) (*model.Member, error) {
	s.applyUser = userID
	return &model.Member{ID: 1, ProjectID: req.ProjectID, UserID: userID, MemberStatusID: model.MemberStatusPending}, nil
}

func (s *stubMembers) Approve(_ context.Context, id, approverID uint64) (*model.Member, bool, error) {
	if id != 1 {
		return nil, false, nil
	}
	return &model.Member{ID: 1, MemberStatusID: model.MemberStatusApproved, ApproverID: &approverID}, true, nil
}

func (s *stubMembers) Reject(_ context.Context, id uint64, feedback string, rejecterID uint64) (*model.Member, bool, error) {
	s.feedback = feedback
	if id != 1 {
		return nil, false, nil
	}
	return &model.Member{ID: 1, MemberStatusID: model.MemberStatusRejected, RejecterID: &rejecterID}, true, nil
}

func TestMemberHandler(t *testing.T) {
	svc := &stubMembers{}
	h := NewMemberHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/member/apply", asUser(7), h.Apply)
	r.PATCH("/member/approve/:id", asUser(9), h.Approve)
	r.PATCH("/member/reject/:id", asUser(9), h.Reject)

	w := do(r, http.MethodPost, "/member/apply", `{"projectId":3,"roleId":2,"userId":100,"isManager":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint64(7), svc.applyUser)

	w = do(r, http.MethodPatch, "/member/approve/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"approverId":9`)

	w = do(r, http.MethodPatch, "/member/approve/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodPatch, "/member/reject/2", `{"applicationFeedback":"full"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "full", svc.feedback)

	w = do(r, http.MethodPatch, "/member/reject/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubUsers struct {
	UserUsecase
	pwErr   error
	picName string
	picSize int64
}

func (s *stubUsers) ChangePassword(context.Context, dto.UserPasswordChangeRequest, uint64) (bool, error) {
	return true, s.pwErr
}

func (s *stubUsers) ChangeProfilePic(_ context.Context, f service.ImageFile, id uint64) (*model.User, bool, error) {
	s.picName, s.picSize = f.Name, f.Size
	return &model.User{ID: id, ProfilePicURL: "https://img/x.png"}, true, nil
}

func TestUserHandler_ChangePassword(t *testing.T) {
	svc := &stubUsers{pwErr: service.ErrBadCredentials}
	h := NewUserHandler(svc, 0, zap.NewNop())
	r := gin.New()
	r.PATCH("/user/password", asUser(1), h.ChangePassword)

	body := `{"oldPassword":"wrong","newPassword":"new-password"}`
	w := do(r, http.MethodPatch, "/user/password", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.pwErr = errors.New("db down")
	w = do(r, http.MethodPatch, "/user/password", body)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	svc.pwErr = nil
	w = do(r, http.MethodPatch, "/user/password", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_ChangeProfilePic(t *testing.T) {
	svc := &stubUsers{}
	h := NewUserHandler(svc, 1024, zap.NewNop())
	r := gin.New()
	r.PATCH("/user/profile-pic", asUser(1), h.ChangeProfilePic)

	send := func(payload []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, _ := mw.CreateFormFile("file", "me.png")
		_, _ = part.Write(payload)
		_ = mw.Close()
		req := httptest.NewRequest(http.MethodPatch, "/user/profile-pic", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send([]byte("PNG"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "me.png", svc.picName)
	assert.Equal(t, int64(3), svc.picSize)
	assert.Contains(t, w.Body.String(), "https://img/x.png")

	w = send(bytes.Repeat([]byte("x"), 2048))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = do(r, http.MethodPatch, "/user/profile-pic", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubTopics struct {
	LookupUsecase[model.Topic]
}

func (stubTopics) ChangeColor(_ context.Context, id uint64, hex string) (*model.Topic, bool, error) {
	if id != 1 {
		return nil, false, nil
	}
	return &model.Topic{ID: 1, Name: "AI", HexColor: hex}, true, nil
}

func TestTopicHandler_ChangeColor(t *testing.T) {
	h := NewTopicHandler(stubTopics{}, zap.NewNop())
	r := gin.New()
	r.PATCH("/topic/color/:id", h.ChangeColor)

	w := do(r, http.MethodPatch, "/topic/color/1", `{"hexColor":"#00ff00"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"AI","hexColor":"#00ff00"}`, w.Body.String())

	w = do(r, http.MethodPatch, "/topic/color/1", `{"hexColor":"green"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPatch, "/topic/color/2", `{"hexColor":"#00ff00"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

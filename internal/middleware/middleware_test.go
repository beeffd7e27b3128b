package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"m42hub/internal/pkg"
)

func init() { gin.SetMode(gin.TestMode) }

type stubParser struct{}

func (stubParser) ParseAccess(token string) (*pkg.Claims, error) {
	switch token {
	case "good", "stale":
		return &pkg.Claims{UserID: 7, Username: "alice", Role: "USER"}, nil
	}
	return nil, pkg.ErrTokenInvalid
}

type stubSessions struct{ extended int }

func (s *stubSessions) Get(_ context.Context, userID uint64) (string, error) {
	if userID == 7 {
		return "good", nil
	}
	return "", errors.New("none")
}

func (s *stubSessions) Extend(context.Context, uint64) error {
	s.extended++
	return nil
}

type stubChecker map[string]bool

func (s stubChecker) Allowed(role, permission string) bool {
	return role == "ADMIN" || s[role+"/"+permission]
}

func newAuthEngine(sessions *stubSessions, perm string) *gin.Engine {
	r := gin.New()
	r.GET("/p",
		AuthMiddleware(stubParser{}, sessions, zap.NewNop()),
		RequirePermission(stubChecker{"USER/project:create": true}, perm),
		func(c *gin.Context) {
			id, _ := UserID(c)
			c.JSON(http.StatusOK, gin.H{"id": id, "username": c.GetString(ContextUsernameKey)})
		})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		perm   string
		want   int
	}{
		{"missing header", "", "project:create", http.StatusUnauthorized},
		{"not bearer", "Basic abc", "project:create", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "project:create", http.StatusUnauthorized},
		{"replaced session", "Bearer stale", "project:create", http.StatusUnauthorized},
		{"ok", "Bearer good", "project:create", http.StatusOK},
		{"forbidden", "Bearer good", "member:approve", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sessions := &stubSessions{}
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			newAuthEngine(sessions, tc.perm).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.JSONEq(t, `{"id":7,"username":"alice"}`, w.Body.String())
				assert.Equal(t, 1, sessions.extended)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(1, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimiter_SweepsOncePerTTL(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Second), 1, time.Minute)
	base := time.Now()

	rl.getLimiter("a", base)
	rl.getLimiter("b", base.Add(30*time.Second))
	assert.Len(t, rl.visitors, 2)

	rl.getLimiter("c", base.Add(90*time.Second))
	assert.NotContains(t, rl.visitors, "a")
	assert.Contains(t, rl.visitors, "b")
	assert.Contains(t, rl.visitors, "c")

	// b is idle past the ttl now, but the next sweep is not due yet.
	rl.getLimiter("d", base.Add(100*time.Second))
	assert.Len(t, rl.visitors, 3)
	assert.Contains(t, rl.visitors, "b")
}

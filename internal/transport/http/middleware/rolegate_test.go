package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweet-shop-api/internal/domain"
)

type fakeResolver struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	ensures  int
	fail     bool
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{profiles: map[string]*domain.Profile{}}
}

func (r *fakeResolver) Ensure(_ context.Context, uid string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("db down")
	}
	r.ensures++
	if p, ok := r.profiles[uid]; ok {
		cp := *p
		return &cp, nil
	}
	p := &domain.Profile{ID: uid, Role: domain.RoleUser}
	r.profiles[uid] = p
	cp := *p
	return &cp, nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func gateRequest(t *testing.T, pr ProfileResolver, requireRole, uid string) (envelope, *fakeResolver) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", func(c *gin.Context) {
		if uid != "" {
			c.Set(KeyUserID, uid)
		}
		c.Next()
	}, RequireRole(pr, requireRole), func(c *gin.Context) {
		p, ok := ProfileFrom(c)
		require.True(t, ok, "profile must be in context past the gate")
		c.JSON(http.StatusOK, gin.H{"code": 0, "msg": "OK", "data": p.Role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	fr, _ := pr.(*fakeResolver)
	return env, fr
}

func TestRequireRole_MissingIdentity(t *testing.T) {
	env, fr := gateRequest(t, newFakeResolver(), "", "")
	assert.Equal(t, 401, env.Code)
	assert.Equal(t, 0, fr.ensures, "no resolver call without identity")
}

func TestRequireRole_LazyCreatesProfile(t *testing.T) {
	pr := newFakeResolver()
	env, _ := gateRequest(t, pr, "", "u1")
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, 1, pr.ensures)

	p, ok := pr.profiles["u1"]
	require.True(t, ok)
	assert.Equal(t, domain.RoleUser, p.Role)
}

func TestRequireRole_ForbidsNonAdmin(t *testing.T) {
	env, _ := gateRequest(t, newFakeResolver(), domain.RoleAdmin, "u1")
	assert.Equal(t, 403, env.Code)
}

func TestRequireRole_AdmitsAdmin(t *testing.T) {
	pr := newFakeResolver()
	pr.profiles["root"] = &domain.Profile{ID: "root", Role: domain.RoleAdmin}
	env, _ := gateRequest(t, pr, domain.RoleAdmin, "root")
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, `"admin"`, string(env.Data))
}

func TestRequireRole_ResolverFailure(t *testing.T) {
	pr := newFakeResolver()
	pr.fail = true
	env, _ := gateRequest(t, pr, "", "u1")
	assert.Equal(t, 500, env.Code)
}

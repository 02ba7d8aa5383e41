package http

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/internal/middleware"
	"kb-integration/internal/model"
	"kb-integration/internal/repoconfig/repository/postgre"
	"kb-integration/internal/repoconfig/usecase"
	"kb-integration/internal/testutil"
	"kb-integration/pkg/encrypter"
	"kb-integration/pkg/log"
	"kb-integration/pkg/scope"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router     *gin.Engine
	adminToken string
	userToken  string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	enc, err := encrypter.New("test-key")
	require.NoError(t, err)
	jwt, err := scope.New("jwt-secret")
	require.NoError(t, err)

	uc := usecase.New(postgre.New(db, db, log.NewNop()), enc, log.NewNop())
	router := gin.New()
	RegisterRoutes(router.Group("/api/admin"), New(log.NewNop(), uc), middleware.New(log.NewNop(), jwt, nil))

	adminToken, _ := jwt.CreateToken(scope.Payload{UserID: "admin-1", Role: model.RoleAdmin}, time.Minute)
	userToken, _ := jwt.CreateToken(scope.Payload{UserID: "user-1", Role: model.RoleUser}, time.Minute)
	return testEnv{router: router, adminToken: adminToken, userToken: userToken}
}

func (e testEnv) do(method, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	return e.doPath(method, "/api/admin/repo-configs", token, body)
}

func (e testEnv) doPath(method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestUpsert_MissingRepositoryName(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(nethttp.MethodPost, env.adminToken, `{"targets":["x"]}`)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"error": "repository_name is required"}, resp)
}

func TestUpsert_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(nethttp.MethodPost, env.adminToken, `{"repository_name":`)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", resp["error"])
}

func TestUpsertThenList(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(nethttp.MethodPost, env.adminToken, `{"repository_name":"acme/docs","github_token":"ghp_123","enabled":false}`)
	require.Equal(t, nethttp.StatusOK, w.Code)

	cfg := resp["config"].(map[string]any)
	assert.Equal(t, "acme/docs", cfg["repository_name"])
	assert.Equal(t, []any{"**/*.md", "**/*.mdx"}, cfg["source_patterns"])
	assert.Equal(t, false, cfg["enabled"])
	assert.Equal(t, true, cfg["has_token"])
	assert.NotContains(t, w.Body.String(), "ghp_123")

	w, resp = env.do(nethttp.MethodGet, env.adminToken, "")
	require.Equal(t, nethttp.StatusOK, w.Code)
	configs := resp["configs"].([]any)
	require.Len(t, configs, 1)
	assert.NotContains(t, w.Body.String(), "ghp_123")
	assert.NotContains(t, w.Body.String(), "github_token")
}

func TestList_EnabledOnly(t *testing.T) {
	env := newTestEnv(t)
	for _, body := range []string{
		`{"repository_name":"acme/api"}`,
		`{"repository_name":"acme/old","enabled":false}`,
	} {
		w, _ := env.do(nethttp.MethodPost, env.adminToken, body)
		require.Equal(t, nethttp.StatusOK, w.Code)
	}

	w, resp := env.doPath(nethttp.MethodGet, "/api/admin/repo-configs?enabled_only=true", env.adminToken, "")
	require.Equal(t, nethttp.StatusOK, w.Code)
	configs := resp["configs"].([]any)
	require.Len(t, configs, 1)
	assert.Equal(t, "acme/api", configs[0].(map[string]any)["repository_name"])

	w, resp = env.doPath(nethttp.MethodGet, "/api/admin/repo-configs?enabled_only=false", env.adminToken, "")
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Len(t, resp["configs"], 2)

	w, resp = env.doPath(nethttp.MethodGet, "/api/admin/repo-configs?enabled_only=maybe", env.adminToken, "")
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, "enabled_only must be a boolean", resp["error"])
}

func TestList_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(nethttp.MethodGet, env.adminToken, "")

	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"configs":[]}`, w.Body.String())
}

func TestRoutes_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(nethttp.MethodGet, "", "")
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)

	w, _ = env.do(nethttp.MethodPost, env.userToken, `{"repository_name":"acme/docs"}`)
	assert.Equal(t, nethttp.StatusForbidden, w.Code)
}

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/internal/middleware"
	"kb-integration/internal/model"
	"kb-integration/internal/proposal/repository/postgre"
	"kb-integration/internal/proposal/usecase"
	"kb-integration/internal/quality"
	"kb-integration/internal/ratelimit"
	"kb-integration/internal/testutil"
	"kb-integration/pkg/log"
	"kb-integration/pkg/scope"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const sampleContent = "# Rollback\n\nUse `make rollback` to return to the previous release.\n\nIt prints the restored tag."

type testEnv struct {
	router *gin.Engine
	token  string
}

func newTestEnv(t *testing.T, perHour int) testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.SeedUser(t, db, "user-1", "Ada")
	testutil.SeedDocument(t, db, "doc-1", "Operations", "# Operations", 7)

	jwt, err := scope.New("jwt-secret")
	require.NoError(t, err)
	limiter := ratelimit.New(ratelimit.Config{Policies: map[string]ratelimit.Policy{
		ratelimit.CategoryProposalCreate: {Requests: perHour, Window: time.Hour},
	}}, log.NewNop())

	uc := usecase.New(postgre.New(db, log.NewNop()), quality.New(quality.Config{}, nil, log.NewNop()), log.NewNop())
	router := gin.New()
	RegisterRoutes(router.Group("/api"), New(log.NewNop(), uc), middleware.New(log.NewNop(), jwt, nil), limiter)

	token, err := jwt.CreateToken(scope.Payload{UserID: "user-1", Role: model.RoleUser}, time.Minute)
	require.NoError(t, err)
	return testEnv{router: router, token: token}
}

func (e testEnv) post(token string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	raw, ok := payload.(string)
	if !ok {
		b, _ := json.Marshal(payload)
		raw = string(b)
	}
	req := httptest.NewRequest(nethttp.MethodPost, "/api/proposals", bytes.NewBufferString(raw))
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

func (e testEnv) list(query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(nethttp.MethodGet, "/api/proposals"+query, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func submission(base any) map[string]any {
	m := map[string]any{
		"targetDocId": "doc-1",
		"changeKind":  "append",
		"title":       "Document rollback",
		"contentMd":   sampleContent,
		"rationale":   "On-call needed this last week.",
	}
	if base != nil {
		m["baseDocVersion"] = base
	}
	return m
}

func TestCreate_Created(t *testing.T) {
	env := newTestEnv(t, 10)

	w, resp := env.post(env.token, submission(7))

	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, float64(7), resp["baseDocVersion"])
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, "user-1", resp["authorId"])
}

func TestCreate_StaleVersion(t *testing.T) {
	env := newTestEnv(t, 10)

	w, resp := env.post(env.token, submission(5))

	assert.Equal(t, nethttp.StatusConflict, w.Code)
	assert.Equal(t, map[string]any{
		"error":          "Document has been updated",
		"currentVersion": float64(7),
		"yourVersion":    float64(5),
	}, resp)
}

func TestCreate_PendingClaim(t *testing.T) {
	env := newTestEnv(t, 10)

	w, _ := env.post(env.token, submission(7))
	require.Equal(t, nethttp.StatusCreated, w.Code)

	w, resp := env.post(env.token, submission(7))
	assert.Equal(t, nethttp.StatusConflict, w.Code)
	assert.Equal(t, float64(7), resp["currentVersion"])
	assert.Equal(t, float64(7), resp["yourVersion"])
}

func TestCreate_InvalidProposal(t *testing.T) {
	env := newTestEnv(t, 10)
	in := submission(nil)
	in["changeKind"] = "rewrite"
	in["title"] = "x"

	w, resp := env.post(env.token, in)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid proposal", resp["error"])
	assert.Len(t, resp["fields"], 2)
}

func TestCreate_QualityRejected(t *testing.T) {
	env := newTestEnv(t, 10)
	in := submission(nil)
	in["contentMd"] = "TODO fill in later\nTODO fill in later\nTODO fill in later\nTODO fill in later"

	w, resp := env.post(env.token, in)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.NotEmpty(t, resp["issues"])
	assert.Less(t, resp["score"], float64(quality.DefaultThreshold))
}

func TestCreate_UnknownDocument(t *testing.T) {
	env := newTestEnv(t, 10)
	in := submission(nil)
	in["targetDocId"] = "doc-404"

	w, resp := env.post(env.token, in)

	assert.Equal(t, nethttp.StatusNotFound, w.Code)
	assert.Equal(t, map[string]any{"error": "Document not found"}, resp)
}

func TestCreate_MalformedBody(t *testing.T) {
	env := newTestEnv(t, 10)

	w, resp := env.post(env.token, `{"targetDocId":`)

	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", resp["error"])
}

func TestCreate_RequiresToken(t *testing.T) {
	env := newTestEnv(t, 10)

	w, _ := env.post("", submission(nil))
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestCreate_RateLimited(t *testing.T) {
	env := newTestEnv(t, 1)
	in := submission(nil)
	in["targetDocId"] = "doc-404"

	w, _ := env.post(env.token, in)
	require.Equal(t, nethttp.StatusNotFound, w.Code)

	w, resp := env.post(env.token, in)
	assert.Equal(t, nethttp.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests", resp["error"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestList(t *testing.T) {
	env := newTestEnv(t, 10)
	w, _ := env.post(env.token, submission(nil))
	require.Equal(t, nethttp.StatusCreated, w.Code)

	w = env.list("?targetDocId=doc-1")
	require.Equal(t, nethttp.StatusOK, w.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Ada", items[0]["author"].(map[string]any)["displayName"])
	assert.Equal(t, "Operations", items[0]["targetDoc"].(map[string]any)["title"])
	assert.Equal(t, "pending", items[0]["proposal"].(map[string]any)["status"])

	w = env.list("?status=accepted")
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestList_BadFilters(t *testing.T) {
	env := newTestEnv(t, 10)

	for _, q := range []string{"?status=merged", "?limit=ten"} {
		w := env.list(q)
		assert.Equal(t, nethttp.StatusBadRequest, w.Code, fmt.Sprintf("query %s", q))
	}
}

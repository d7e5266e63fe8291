package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/advisor/internal/app"
	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// stubAdvisor returns canned responses and captures the request context.
type stubAdvisor struct {
	lastUser *common.UserContext
}

func (s *stubAdvisor) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	s.lastUser = common.GetUserContext(ctx)
	return &models.AnalyzeResponse{Analysis: "stub analysis", AssetCount: len(req.Portfolio)}, nil
}

func (s *stubAdvisor) Recommend(ctx context.Context, req *models.RecommendRequest) (*models.RecommendResponse, error) {
	s.lastUser = common.GetUserContext(ctx)
	return &models.RecommendResponse{Feedback: "stub feedback"}, nil
}

func (s *stubAdvisor) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	return &models.ChatResponse{Reply: "stub reply"}, nil
}

func (s *stubAdvisor) TickerInfo(ctx context.Context, symbol string) (*models.TickerInfo, error) {
	if symbol != "AAPL" {
		return nil, errors.New("not found")
	}
	return &models.TickerInfo{Symbol: "AAPL", Price: 200, Type: "Stock"}, nil
}

// memUsers is an in-memory user store for middleware tests.
type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]*models.User)}
}

func (m *memUsers) GetUser(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, errors.New("user not found")
}

func (m *memUsers) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.APIKey == apiKey {
			c := *u
			return &c, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *memUsers) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, errors.New("user not found")
}

func (m *memUsers) SaveUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *user
	m.users[user.ID] = &c
	return nil
}

func (m *memUsers) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memUsers) ListUsers(ctx context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.User
	for _, u := range m.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

// stubStorage satisfies StorageManager with only the user store populated.
type stubStorage struct {
	users *memUsers
}

func (s *stubStorage) Users() interfaces.UserStore                 { return s.users }
func (s *stubStorage) Conversations() interfaces.ConversationStore { return nil }
func (s *stubStorage) KV() interfaces.KeyValueStore                { return nil }
func (s *stubStorage) Close() error                                { return nil }

const testServiceKey = "service-key-123"

func newTestServer(t *testing.T) (*Server, *stubAdvisor, *memUsers) {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Auth.ServiceKey = testServiceKey

	advisor := &stubAdvisor{}
	users := newMemUsers()

	a := &app.App{
		Config:  config,
		Logger:  common.NewSilentLogger(),
		Storage: &stubStorage{users: users},
		Advisor: advisor,
	}
	return NewServer(a), advisor, users
}

func doRequest(t *testing.T, srv *Server, method, path, serviceKey, userKey string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if serviceKey != "" {
		req.Header.Set("Authorization", serviceKey)
	}
	if userKey != "" {
		req.Header.Set("Authentication", userKey)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func analyzeBody() *models.AnalyzeRequest {
	return &models.AnalyzeRequest{Portfolio: []models.Holding{{Symbol: "AAPL"}}}
}

func TestHealthEndpointOpen(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestVersionEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/version", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)
}

func TestServiceKeyRequired(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", "", "", analyzeBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", "wrong-key", "", analyzeBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServiceKeyUnsetDeniesAll(t *testing.T) {
	srv, _, _ := newTestServer(t)
	srv.app.Config.Auth.ServiceKey = ""

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", "any", "", analyzeBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", testServiceKey, "", analyzeBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "stub analysis", resp.Analysis)
	assert.Equal(t, 1, resp.AssetCount)
}

func TestAnalyzeEndpoint_EmptyPortfolio(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", testServiceKey, "", &models.AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpoint_MethodNotAllowed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/portfolio/analyze", testServiceKey, "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	body := &models.RecommendRequest{Portfolio: []models.Holding{{Symbol: "AAPL"}}}
	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/recommendations", testServiceKey, "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stub feedback")
}

func TestChatEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/chat", testServiceKey, "", &models.ChatRequest{Message: "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stub reply")

	rec = doRequest(t, srv, http.MethodPost, "/api/portfolio/chat", testServiceKey, "", &models.ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTickerInfoEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/portfolio/ticker-info?symbol=aapl", testServiceKey, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AAPL")

	rec = doRequest(t, srv, http.MethodGet, "/api/portfolio/ticker-info", testServiceKey, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/portfolio/ticker-info?symbol=NOPE", testServiceKey, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserKeyAuthentication(t *testing.T) {
	srv, advisor, users := newTestServer(t)

	user := &models.User{
		ID:          "u1",
		Username:    "alice",
		APIKey:      "user-key-abc",
		IsAPIActive: true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, users.SaveUser(context.Background(), user))

	// Valid per-user key resolves the user into the request context.
	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", testServiceKey, "user-key-abc", analyzeBody())
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, advisor.lastUser)
	assert.Equal(t, "u1", advisor.lastUser.UserID)
	assert.Equal(t, "alice", advisor.lastUser.Username)

	// Last access time was stamped.
	updated, err := users.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, updated.LastAPIAccess.IsZero())

	// Invalid key is rejected outright.
	rec = doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", testServiceKey, "bogus", analyzeBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Absent key is anonymous, not an error.
	advisor.lastUser = nil
	rec = doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", testServiceKey, "", analyzeBody())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, advisor.lastUser)
}

func TestUserKeyAuthentication_InactiveUserRejected(t *testing.T) {
	srv, _, users := newTestServer(t)

	require.NoError(t, users.SaveUser(context.Background(), &models.User{
		ID: "u2", Username: "bob", APIKey: "inactive-key", IsAPIActive: false,
	}))

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio/analyze", testServiceKey, "inactive-key", analyzeBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/users/register", testServiceKey, "", &models.RegisterRequest{Username: "carol"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "carol", resp.Username)
	assert.NotEmpty(t, resp.APIKey)
	assert.NotEmpty(t, resp.ID)

	// Duplicate usernames are rejected.
	rec = doRequest(t, srv, http.MethodPost, "/api/users/register", testServiceKey, "", &models.RegisterRequest{Username: "carol"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Username required.
	rec = doRequest(t, srv, http.MethodPost, "/api/users/register", testServiceKey, "", &models.RegisterRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/portfolio/analyze", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationIDHeader(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "", "", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	out := httptest.NewRecorder()
	srv.Handler().ServeHTTP(out, req)
	assert.Equal(t, "req-42", out.Header().Get("X-Correlation-ID"))
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildcast/wildcast/internal/auth"
	"github.com/wildcast/wildcast/internal/config"
	"github.com/wildcast/wildcast/internal/matcher"
	"github.com/wildcast/wildcast/internal/model"
	"github.com/wildcast/wildcast/internal/outreach"
	"github.com/wildcast/wildcast/internal/store"
)

type testEnv struct {
	srv    *httptest.Server
	store  store.Store
	signer *auth.Signer
}

func newTestEnv(t *testing.T, opts ...func(*Server)) *testEnv {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	signer, err := auth.NewSigner("test-secret", time.Hour)
	require.NoError(t, err)

	s := New(st, matcher.NewContactMatcher(nil), signer, nil, "admin@example.com", config.ServerConfig{
		AllowedOrigins: []string{"*"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	})
	for _, opt := range opts {
		opt(s)
	}

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: st, signer: signer}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// tokenFor creates a user directly in the store and signs a session for it.
func (e *testEnv) tokenFor(t *testing.T, email string, role model.Role, plan model.Plan) string {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), model.User{Email: email, Role: role, Plan: plan})
	require.NoError(t, err)
	token, err := e.signer.Sign(u)
	require.NoError(t, err)
	return token
}

func (e *testEnv) seedContacts(t *testing.T, n int) {
	t.Helper()
	contacts := make([]model.Contact, n)
	for i := range contacts {
		contacts[i] = model.Contact{
			ID:    fmt.Sprintf("c-%03d", i),
			Title: "Marketing Manager",
		}
	}
	_, err := e.store.BulkInsertContacts(context.Background(), contacts)
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "Host@Example.com", "name": "Host", "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reg := decodeBody[authResponse](t, resp)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "host@example.com", reg.User.Email)
	assert.Equal(t, model.RoleUser, reg.User.Role)

	// Duplicate registration conflicts.
	resp = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "host@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login with the right and wrong password.
	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "host@example.com", "password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "host@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "host@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"password": "hunter2hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterClaimsSubmission(t *testing.T) {
	env := newTestEnv(t)

	sub, err := env.store.CreateSubmission(context.Background(), model.SurveySubmission{
		Email: "host@example.com",
	})
	require.NoError(t, err)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "host@example.com", "password": "hunter2hunter2", "submissionId": sub.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reg := decodeBody[authResponse](t, resp)

	linked, err := env.store.GetSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, linked.UserID)
}

func TestRegisterAdminEmailGetsAdminRole(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "admin@example.com", "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reg := decodeBody[authResponse](t, resp)
	assert.Equal(t, model.RoleAdmin, reg.User.Role)
}

func TestMatchContactsFreeLimit(t *testing.T) {
	env := newTestEnv(t)
	env.seedContacts(t, FreeMatchLimit+2)

	// Anonymous callers are truncated.
	resp := env.do(t, http.MethodPost, "/api/matches", "", model.SurveyAnswers{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[matchResponse](t, resp)
	assert.Len(t, body.Matches, FreeMatchLimit)
	assert.Equal(t, FreeMatchLimit+2, body.Total)
	assert.True(t, body.Limited)

	// Pro users see the full list.
	pro := env.tokenFor(t, "pro@example.com", model.RoleUser, model.PlanPro)
	resp = env.do(t, http.MethodPost, "/api/matches", pro, model.SurveyAnswers{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody[matchResponse](t, resp)
	assert.Len(t, body.Matches, FreeMatchLimit+2)
	assert.False(t, body.Limited)
}

// TestMatchContactsFlatBody pins the wire format: the body is the answers
// object itself, not wrapped in an envelope.
func TestMatchContactsFlatBody(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.BulkInsertContacts(context.Background(), []model.Contact{
		{ID: "c-soft", Industries: "Software", Title: "Engineer"},
	})
	require.NoError(t, err)

	resp := env.do(t, http.MethodPost, "/api/matches", "", map[string]any{"category": "tech"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[matchResponse](t, resp)
	require.Equal(t, 1, body.Total)
	require.Len(t, body.Matches, 1)
	assert.Equal(t, "c-soft", body.Matches[0].ID)
	assert.GreaterOrEqual(t, body.Matches[0].MatchScore, 25)
}

func TestMatchContactsEmptyPool(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/matches", "", model.SurveyAnswers{Category: model.CategoryTech})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[matchResponse](t, resp)
	assert.NotNil(t, body.Matches)
	assert.Empty(t, body.Matches)
	assert.Zero(t, body.Total)
}

func TestMatchContactsBadBody(t *testing.T) {
	env := newTestEnv(t)
	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/api/matches", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMatchRateLimit(t *testing.T) {
	env := newTestEnv(t, func(s *Server) {
		s.cfg.RateLimitRPS = 0
		s.cfg.RateLimitBurst = 1
	})
	env.seedContacts(t, 1)

	resp := env.do(t, http.MethodPost, "/api/matches", "", model.SurveyAnswers{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/matches", "", model.SurveyAnswers{})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestMatchSponsorsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/sponsors/match", "", sponsorMatchRequest{
		Answers: model.SurveyAnswers{Category: model.CategoryBusiness},
		Sponsors: []model.Sponsor{
			{ID: "hit", PreferredCategories: []model.PodcastCategory{model.CategoryBusiness}},
			{ID: "miss"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[struct {
		Matches []model.SponsorMatch `json:"matches"`
		Total   int                  `json:"total"`
	}](t, resp)
	require.Len(t, body.Matches, 2)
	assert.Equal(t, "hit", body.Matches[0].ID)
}

func TestGrowthPlanEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/growth-plan", "", growthPlanRequest{
		Answers: model.SurveyAnswers{Category: model.CategoryTech, Format: model.FormatSolo},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decodeBody[model.GrowthPlan](t, resp)
	assert.NotEmpty(t, plan.CrossPromoShows)
	assert.NotEmpty(t, plan.DistributionStrategies)
}

func TestSurveyLifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/survey", "", map[string]any{
		"category":     "tech",
		"listenerType": []string{"founders-executives"},
		"podcastName":  "Deploy Friday",
		"email":        "host@example.com",
		"hasMediaKit":  true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sub := decodeBody[model.SurveySubmission](t, resp)
	require.NotEmpty(t, sub.ID)
	assert.Equal(t, model.CategoryTech, sub.Answers.Category)

	resp = env.do(t, http.MethodGet, "/api/survey/"+sub.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[model.SurveySubmission](t, resp)
	assert.Equal(t, "Deploy Friday", got.PodcastName)
	assert.True(t, got.HasMediaKit)

	resp = env.do(t, http.MethodGet, "/api/survey/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOutreachRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/outreach", "", createOutreachRequest{ContactID: "c-1", BrandName: "Acme"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/outreach", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOutreachLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "host@example.com", model.RoleUser, model.PlanFree)

	resp := env.do(t, http.MethodPost, "/api/outreach", token, createOutreachRequest{
		ContactID: "c-1", BrandName: "Brightcart", ContactName: "Dana Reyes",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Missing required fields.
	resp = env.do(t, http.MethodPost, "/api/outreach", token, createOutreachRequest{BrandName: "Acme"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/outreach", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := decodeBody[[]model.OutreachRecord](t, resp)
	require.Len(t, records, 1)
	assert.Equal(t, "Brightcart", records[0].BrandName)
}

func TestOutreachTemplatesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	req := templatesRequest{
		Match: model.ContactMatch{
			Contact: model.Contact{FirstName: "Dana", Company: "Brightcart"},
		},
		Answers: model.SurveyAnswers{Category: model.CategoryTech},
		Podcast: model.PodcastInfo{PodcastName: "Deploy Friday", PodcastURL: "https://example.com"},
	}
	resp := env.do(t, http.MethodPost, "/api/outreach/templates", "", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[templatesResponse](t, resp)
	assert.Equal(t, "Tech Podcast Sponsorship Opportunity - Deploy Friday", body.Subject)
	require.Len(t, body.Drafts, 2)
	assert.Contains(t, body.Drafts[0].Content, "Brightcart")

	// Missing company is rejected.
	req.Match.Company = ""
	resp = env.do(t, http.MethodPost, "/api/outreach/templates", "", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type echoCompleter struct{}

func (echoCompleter) Complete(context.Context, string) (string, error) {
	return "rewritten by model", nil
}

func TestOutreachTemplatesWithAI(t *testing.T) {
	env := newTestEnv(t, func(s *Server) {
		s.drafter = outreach.NewAIDrafter(echoCompleter{})
	})

	resp := env.do(t, http.MethodPost, "/api/outreach/templates", "", templatesRequest{
		Match:   model.ContactMatch{Contact: model.Contact{Company: "Brightcart"}},
		Podcast: model.PodcastInfo{PodcastName: "Deploy Friday"},
		AI:      true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[templatesResponse](t, resp)
	require.Len(t, body.Drafts, 2)
	assert.Equal(t, "professional-ai", body.Drafts[0].ID)
	assert.Equal(t, "rewritten by model", body.Drafts[0].Content)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	user := env.tokenFor(t, "host@example.com", model.RoleUser, model.PlanFree)

	resp := env.do(t, http.MethodGet, "/api/admin/stats", user, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminStatsAndAssign(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@example.com", model.RoleAdmin, model.PlanPro)
	env.seedContacts(t, 3)

	resp := env.do(t, http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody[store.Stats](t, resp)
	assert.Equal(t, 3, stats.Contacts)
	assert.Equal(t, 1, stats.Users)

	resp = env.do(t, http.MethodGet, "/api/admin/contacts", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	contacts := decodeBody[[]model.Contact](t, resp)
	require.Len(t, contacts, 3)

	u, err := env.store.CreateUser(context.Background(), model.User{Email: "rep@example.com"})
	require.NoError(t, err)
	resp = env.do(t, http.MethodPatch, "/api/admin/contacts/"+contacts[0].ID+"/assign", admin,
		assignContactRequest{AssignedUserID: u.ID})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/admin/contacts/nope/assign", admin,
		assignContactRequest{AssignedUserID: u.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminUpdatePlan(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@example.com", model.RoleAdmin, model.PlanPro)

	u, err := env.store.CreateUser(context.Background(), model.User{Email: "host@example.com"})
	require.NoError(t, err)

	resp := env.do(t, http.MethodPatch, "/api/admin/users/"+u.ID+"/plan", admin,
		updatePlanRequest{Plan: model.PlanPro})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := env.store.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanPro, got.Plan)

	resp = env.do(t, http.MethodPatch, "/api/admin/users/"+u.ID+"/plan", admin,
		updatePlanRequest{Plan: "enterprise"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/admin/users/nope/plan", admin,
		updatePlanRequest{Plan: model.PlanFree})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

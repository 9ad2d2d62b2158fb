package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/service"
	"github.com/askdesk/askdesk/internal/infrastructure/credentials"
	"github.com/askdesk/askdesk/internal/infrastructure/queue"
	"github.com/askdesk/askdesk/internal/infrastructure/resume"
	"github.com/askdesk/askdesk/internal/infrastructure/retrieval"
)

type stubCompleter struct {
	answer string
	err    error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.answer, s.err
}

type testServer struct {
	e         *echo.Echo
	completer *stubCompleter
}

func newTestServer(t *testing.T, requireIntakeAuth bool, ds *domain.ResumeDataset) *testServer {
	t.Helper()
	log := zerolog.Nop()

	store, err := credentials.NewMemoryStore(map[string]string{"demo": "test123"}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	tokens, err := service.NewJWTService("router-test-secret", time.Minute)
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}

	registry := retrieval.NewRegistry(log)
	if err := registry.Register("mock", retrieval.Mock{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	completer := &stubCompleter{answer: "You built an AI job match copilot."}
	synth := service.NewSynthesizer(completer)

	e := NewRouter(Dependencies{
		Log:                  log,
		Tokens:               tokens,
		Auth:                 service.NewAuthService(store, tokens, nil, log),
		Ask:                  service.NewAskService(registry, synth, time.Second, log),
		Jobs:                 service.NewJobMatcher(resume.NewSource(ds), synth, queue.NewDispatcher(2, log), log),
		Resumes:              resume.NewSource(ds),
		JobIntakeRequireAuth: requireIntakeAuth,
		Registerer:           prometheus.NewRegistry(),
	})
	return &testServer{e: e, completer: completer}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req)
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	rec := s.login(t, "demo", "test123")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token_type"] != "bearer" || resp["access_token"] == "" {
		t.Fatalf("unexpected token payload %+v", resp)
	}
	return resp["access_token"]
}

func jsonPost(path, body, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestRouter_LoginThenAsk(t *testing.T) {
	s := newTestServer(t, false, nil)
	token := s.token(t)

	rec := s.do(jsonPost("/ask", `{"question":"What AI projects?","sources":["mock"]}`, token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Answer  string `json:"answer"`
		Sources []struct {
			Type    string `json:"type"`
			ID      string `json:"id"`
			Snippet string `json:"snippet"`
		} `json:"sources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Answer != "You built an AI job match copilot." {
		t.Fatalf("unexpected answer %q", resp.Answer)
	}
	if len(resp.Sources) != 2 || resp.Sources[0].ID != "mock1" || resp.Sources[1].ID != "mock2" {
		t.Fatalf("unexpected sources %+v", resp.Sources)
	}
	if resp.Sources[0].Type != "mock" {
		t.Fatalf("source type missing: %+v", resp.Sources[0])
	}
}

func TestRouter_AskWithoutTokenIs401(t *testing.T) {
	s := newTestServer(t, false, nil)

	for _, header := range []string{"", "Bearer ", "Basic ZGVtbzp0ZXN0MTIz", "Bearer garbage"} {
		req := jsonPost("/ask", `{"question":"hi"}`, "")
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := s.do(req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
		if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
			t.Fatalf("header %q: expected WWW-Authenticate Bearer, got %q", header, got)
		}
	}
}

func TestRouter_LoginFailures(t *testing.T) {
	s := newTestServer(t, false, nil)

	wrong := s.login(t, "demo", "nope")
	unknown := s.login(t, "ghost", "test123")
	if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", wrong.Code, unknown.Code)
	}
	if wrong.Body.String() != unknown.Body.String() {
		t.Fatalf("unknown user and wrong password must be indistinguishable: %s vs %s", wrong.Body, unknown.Body)
	}

	if rec := s.login(t, "demo", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing password: expected 400, got %d", rec.Code)
	}
}

func TestRouter_AskEmptyQuestionIs422(t *testing.T) {
	s := newTestServer(t, false, nil)
	token := s.token(t)

	for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
		if rec := s.do(jsonPost("/ask", body, token)); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %d", body, rec.Code)
		}
	}
}

func TestRouter_MalformedJSONIs422WithPayloadMessage(t *testing.T) {
	s := newTestServer(t, false, nil)
	token := s.token(t)

	for _, path := range []string{"/ask", "/job/intake"} {
		rec := s.do(jsonPost(path, `{"question":`, token))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", path, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "invalid JSON payload") || strings.Contains(body, "must not be empty") {
			t.Fatalf("%s: unexpected error body %s", path, body)
		}
	}
}

func TestRouter_AskUnknownSourcesReturnsNoData(t *testing.T) {
	s := newTestServer(t, false, nil)
	s.completer.err = errors.New("must not be called")
	token := s.token(t)

	rec := s.do(jsonPost("/ask", `{"question":"hi","sources":["pinecone"]}`, token))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), service.NoDataAnswer) || !strings.Contains(rec.Body.String(), `"sources":[]`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouter_AskCompleterFailureIs502(t *testing.T) {
	s := newTestServer(t, false, nil)
	s.completer.err = errors.New("connection reset")
	token := s.token(t)

	if rec := s.do(jsonPost("/ask", `{"question":"hi"}`, token)); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestRouter_JobIntake(t *testing.T) {
	ds := &domain.ResumeDataset{Skills: []domain.Skill{{Name: "Go", Evidence: []string{"e1"}}}}

	open := newTestServer(t, false, ds)
	rec := open.do(jsonPost("/job/intake", `{"job_description":"Senior Go developer"}`, ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"score":3`) {
		t.Fatalf("expected Go skill match with score 3, got %s", rec.Body.String())
	}

	if rec := open.do(jsonPost("/job/intake", `{"job_description":""}`, "")); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty description: expected 422, got %d", rec.Code)
	}

	guarded := newTestServer(t, true, ds)
	if rec := guarded.do(jsonPost("/job/intake", `{"job_description":"Go"}`, "")); rec.Code != http.StatusUnauthorized {
		t.Fatalf("guarded intake: expected 401, got %d", rec.Code)
	}
	if rec := guarded.do(jsonPost("/job/intake", `{"job_description":"Go"}`, guarded.token(t))); rec.Code != http.StatusOK {
		t.Fatalf("guarded intake with token: expected 200, got %d", rec.Code)
	}
}

func TestRouter_DatasetNotLoadedIs500(t *testing.T) {
	s := newTestServer(t, false, nil)

	if rec := s.do(httptest.NewRequest(http.MethodGet, "/resume/source", nil)); rec.Code != http.StatusInternalServerError {
		t.Fatalf("resume source: expected 500, got %d", rec.Code)
	}
	if rec := s.do(jsonPost("/job/intake", `{"job_description":"Go"}`, "")); rec.Code != http.StatusInternalServerError {
		t.Fatalf("job intake: expected 500, got %d", rec.Code)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t, false, nil)

	if rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil)); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := s.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil)); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "askdesk_") {
		t.Fatalf("metrics: expected askdesk metrics, got %d", rec.Code)
	}
}

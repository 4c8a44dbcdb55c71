package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alibia/backoffice/internal/application"
	"github.com/alibia/backoffice/internal/domain/entity"
	repo "github.com/alibia/backoffice/internal/domain/repository"
	"github.com/alibia/backoffice/internal/interface/middleware"
	"github.com/alibia/backoffice/pkg/helpers"
	"github.com/alibia/backoffice/pkg/validation"
)

type memClientRepo struct {
	byID    map[int64]*entity.UserClient
	byEmail map[string]*entity.UserClient
	nextID  int64
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{byID: map[int64]*entity.UserClient{}, byEmail: map[string]*entity.UserClient{}, nextID: 1}
}

func (s *memClientRepo) Create(_ context.Context, u *entity.UserClient) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return repo.ErrDuplicate
	}
	u.ID = s.nextID
	s.nextID++
	cp := *u
	s.byID[u.ID] = &cp
	s.byEmail[u.Email] = &cp
	return nil
}

func (s *memClientRepo) GetByID(_ context.Context, id int64) (*entity.UserClient, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memClientRepo) GetByEmail(_ context.Context, email string) (*entity.UserClient, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memClientRepo) Update(_ context.Context, u *entity.UserClient) error {
	old, ok := s.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	delete(s.byEmail, old.Email)
	cp := *u
	s.byID[u.ID] = &cp
	s.byEmail[u.Email] = &cp
	return nil
}

func newClientAuthRouter(t *testing.T) (*gin.Engine, *memClientRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := newMemClientRepo()
	jwt := helpers.NewJWTManager("staff", "client", time.Hour)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := application.NewClientAuthService(store, jwt, nil, logger, false)
	h := NewClientAuthHandler(svc, helpers.NewCookieManager("", false), logger)

	r := gin.New()
	ac := r.Group("/api/authClient")
	ac.POST("/register", h.Register)
	ac.POST("/login", h.Login)
	ac.POST("/logout", h.Logout)
	ac.POST("/send-reset-otp", h.SendResetOTP)
	protected := ac.Group("/")
	protected.Use(middleware.ClientAuth(jwt))
	protected.GET("/is-auth", h.IsAuth)
	return r, store
}

func postJSON(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("bad body %q: %v", w.Body.String(), err)
	}
	return e
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newClientAuthRouter(t)
	w := postJSON(r, "/api/authClient/register", `{"name":"Ada","email":"ada@example.com","password":"longenough"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	e := decodeEnvelope(t, w)
	if !e.Success || e.Message != "registrationSuccess" {
		t.Fatalf("envelope = %+v", e)
	}
	if _, leaked := e.Data["password"]; leaked {
		t.Fatal("password leaked in response")
	}
	ck := sessionCookie(w)
	if ck == nil || ck.Value == "" {
		t.Fatal("session cookie not set")
	}
	if !ck.HttpOnly {
		t.Fatal("session cookie not httpOnly")
	}

	// Second registration with the same email conflicts.
	w = postJSON(r, "/api/authClient/register", `{"name":"Eve","email":"ada@example.com","password":"otherpass1"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "userExists" {
		t.Fatalf("duplicate message = %q", e.Message)
	}
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newClientAuthRouter(t)
	w := postJSON(r, "/api/authClient/register", `{"name":"Ada","email":"not-an-email","password":"short"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "missingDetails" {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newClientAuthRouter(t)
	postJSON(r, "/api/authClient/register", `{"name":"Ada","email":"ada@example.com","password":"longenough"}`)

	w := postJSON(r, "/api/authClient/login", `{"email":"ada@example.com","password":"wrongpass"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", w.Code)
	}
	wGhost := postJSON(r, "/api/authClient/login", `{"email":"ghost@example.com","password":"wrongpass"}`)
	if wGhost.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email status = %d", wGhost.Code)
	}
	if decodeEnvelope(t, w).Message != decodeEnvelope(t, wGhost).Message {
		t.Fatal("login rejections are distinguishable")
	}

	w = postJSON(r, "/api/authClient/login", `{"email":"ada@example.com","password":"longenough"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	ck := sessionCookie(w)
	if ck == nil || ck.Value == "" {
		t.Fatal("session cookie not set on login")
	}

	// The cookie authenticates follow-up requests.
	req := httptest.NewRequest(http.MethodGet, "/api/authClient/is-auth", nil)
	req.AddCookie(ck)
	wAuth := httptest.NewRecorder()
	r.ServeHTTP(wAuth, req)
	if wAuth.Code != http.StatusOK {
		t.Fatalf("is-auth status = %d: %s", wAuth.Code, wAuth.Body.String())
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _ := newClientAuthRouter(t)
	w := postJSON(r, "/api/authClient/logout", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	ck := sessionCookie(w)
	if ck == nil {
		t.Fatal("no clearing cookie written")
	}
	if ck.Value != "" || ck.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: value=%q maxAge=%d", ck.Value, ck.MaxAge)
	}
}

// The reset flow deliberately reveals whether an email exists.
func TestSendResetOTPUnknownEmail404(t *testing.T) {
	r, _ := newClientAuthRouter(t)
	w := postJSON(r, "/api/authClient/send-reset-otp", `{"email":"ghost@example.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "userNotFound" {
		t.Fatalf("message = %q", e.Message)
	}
}

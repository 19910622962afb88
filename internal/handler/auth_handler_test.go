package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/hitoshi/typeboard/internal/auth"
	"github.com/hitoshi/typeboard/internal/model"
)

func postLoginForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAuthHandler_LoginPage_RendersForms(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, newFakeSessionStore(), newTestRenderer(t))

	w := httptest.NewRecorder()
	h.LoginPage(w, newRequest(http.MethodGet, "/login"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{`name="sap-id"`, `value="login"`, `value="signup"`, `name="college"`} {
		if !strings.Contains(body, want) {
			t.Errorf("login page should contain %s", want)
		}
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestAuthHandler_Login_Success_EstablishesSessionAndRedirects(t *testing.T) {
	var got auth.LoginForm
	svc := &mockAuthService{
		handleLoginFn: func(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error) {
			got = form
			return &model.SessionUser{Email: "a@x.com", SapID: "600"}, nil
		},
	}
	sessions := newFakeSessionStore()
	h := NewAuthHandler(svc, sessions, newTestRenderer(t))

	w := httptest.NewRecorder()
	h.Login(w, postLoginForm(url.Values{
		"action": {"login"},
		"email":  {"a@x.com"},
		"sap-id": {"600"},
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != MainPath {
		t.Errorf("Location = %q, want %q", loc, MainPath)
	}
	if got.Action != "login" || got.Email != "a@x.com" || got.SapID != "600" {
		t.Errorf("form = %+v", got)
	}
	if len(sessions.established) != 1 || sessions.established[0].Email != "a@x.com" {
		t.Errorf("established = %+v, want one session for a@x.com", sessions.established)
	}
}

func TestAuthHandler_Login_SignupFieldsPassedThrough(t *testing.T) {
	var got auth.LoginForm
	svc := &mockAuthService{
		handleLoginFn: func(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error) {
			got = form
			return &model.SessionUser{Email: form.Email, SapID: form.SapID}, nil
		},
	}
	h := NewAuthHandler(svc, newFakeSessionStore(), newTestRenderer(t))

	w := httptest.NewRecorder()
	h.Login(w, postLoginForm(url.Values{
		"action":  {"signup"},
		"email":   {"b@x.com"},
		"sap-id":  {"601"},
		"name":    {"Bea"},
		"college": {"MPSTME"},
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got.Name != "Bea" || got.College != "MPSTME" {
		t.Errorf("form = %+v, want name and college passed", got)
	}
}

func TestAuthHandler_Login_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{"validation", model.NewValidationError("Email and SAP ID are required."), http.StatusBadRequest, "Email and SAP ID are required."},
		{"user exists", model.NewUserExistsError(), http.StatusBadRequest, "User already exists with this email or SAP ID."},
		{"invalid credentials", model.NewInvalidCredentialsError(), http.StatusUnauthorized, "Invalid credentials. Please try again."},
		{"invalid action", model.NewInvalidActionError("hack"), http.StatusBadRequest, "Invalid action specified"},
		{"database", model.NewDatabaseError(), http.StatusInternalServerError, "A database error occurred."},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError, "A database error occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{
				handleLoginFn: func(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error) {
					return nil, tt.err
				},
			}
			sessions := newFakeSessionStore()
			h := NewAuthHandler(svc, sessions, newTestRenderer(t))

			w := httptest.NewRecorder()
			h.Login(w, postLoginForm(url.Values{"action": {"login"}, "email": {"a@x.com"}, "sap-id": {"600"}}))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := w.Body.String()
			if !strings.Contains(body, tt.wantText) {
				t.Errorf("body should contain %q", tt.wantText)
			}
			if strings.Contains(body, "connection refused") {
				t.Error("driver error text must not be rendered")
			}
			if len(sessions.established) != 0 {
				t.Error("no session should be established on failure")
			}
		})
	}
}

func TestAuthHandler_Login_Error_KeepsFormValuesButNotSapID(t *testing.T) {
	svc := &mockAuthService{
		handleLoginFn: func(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error) {
			return nil, model.NewUserExistsError()
		},
	}
	h := NewAuthHandler(svc, newFakeSessionStore(), newTestRenderer(t))

	w := httptest.NewRecorder()
	h.Login(w, postLoginForm(url.Values{
		"action":  {"signup"},
		"email":   {"c@x.com"},
		"sap-id":  {"secret-sap-987"},
		"name":    {"Cy"},
		"college": {"NMIMS"},
	}))

	body := w.Body.String()
	for _, want := range []string{`value="c@x.com"`, `value="Cy"`, `value="NMIMS"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body should contain %s", want)
		}
	}
	if strings.Contains(body, "secret-sap-987") {
		t.Error("sap-id must not be echoed back")
	}
}

func TestAuthHandler_Login_EscapesErrorMessage(t *testing.T) {
	svc := &mockAuthService{
		handleLoginFn: func(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error) {
			return nil, model.NewInvalidActionError("<script>alert(1)</script>")
		},
	}
	h := NewAuthHandler(svc, newFakeSessionStore(), newTestRenderer(t))

	w := httptest.NewRecorder()
	h.Login(w, postLoginForm(url.Values{"action": {"<script>alert(1)</script>"}, "email": {"a@x.com"}, "sap-id": {"600"}}))

	if strings.Contains(w.Body.String(), "<script>alert(1)</script>") {
		t.Error("error message must be HTML escaped")
	}
}

func TestAuthHandler_Login_SessionFailure_Returns500(t *testing.T) {
	sessions := newFakeSessionStore()
	sessions.establishErr = errors.New("securecookie: the value is too long")
	h := NewAuthHandler(&mockAuthService{}, sessions, newTestRenderer(t))

	w := httptest.NewRecorder()
	h.Login(w, postLoginForm(url.Values{"action": {"login"}, "email": {"a@x.com"}, "sap-id": {"600"}}))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if w.Header().Get("Location") != "" {
		t.Error("should not redirect when the session could not be established")
	}
}

func TestAuthHandler_Logout_ClearsSessionAndRedirects(t *testing.T) {
	sessions := newFakeSessionStore()
	h := NewAuthHandler(&mockAuthService{}, sessions, newTestRenderer(t))

	req := sessions.login(newRequest(http.MethodGet, "/logout"), "a@x.com")
	w := httptest.NewRecorder()
	h.Logout(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if sessions.cleared != 1 {
		t.Errorf("cleared = %d, want 1", sessions.cleared)
	}
	expired := false
	for _, c := range w.Result().Cookies() {
		if c.Name == testSessionCookie && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("logout should expire the session cookie")
	}
}

func TestAuthHandler_Logout_WithoutSession_StillRedirects(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, newFakeSessionStore(), newTestRenderer(t))

	w := httptest.NewRecorder()
	h.Logout(w, newRequest(http.MethodGet, "/logout"))

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/typeboard/internal/auth"
	"github.com/hitoshi/typeboard/internal/middleware"
	"github.com/hitoshi/typeboard/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	HandleLogin(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error)
}

// SessionStore はセッションの発行・参照・破棄を行うインターフェース。
type SessionStore interface {
	middleware.SessionReader
	Establish(w http.ResponseWriter, r *http.Request, user model.SessionUser) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// MainPath はログイン成功後のリダイレクト先。
const MainPath = "/main"

// AuthHandler はログイン画面とセッション発行のHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	sessions SessionStore
	renderer *Renderer
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, sessions SessionStore, renderer *Renderer) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		renderer: renderer,
	}
}

// LoginPage はログイン画面を表示する。
// GET / , GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, PageLogin, PageData{Title: "Log in"})
}

// Login はログインまたはサインアップフォームを処理する。
// POST /login
//
// 成功時はセッションを発行して303で /main へリダイレクトする。
// 失敗時はエラーメッセージ付きでログイン画面を再表示する。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, http.StatusBadRequest, LoginFormValues{}, "Invalid form submission.")
		return
	}

	form := auth.LoginForm{
		Action:  r.PostForm.Get("action"),
		Email:   r.PostForm.Get("email"),
		SapID:   r.PostForm.Get("sap-id"),
		Name:    r.PostForm.Get("name"),
		College: r.PostForm.Get("college"),
	}

	// sap_idは認証情報のためログに残さない
	slog.Info("login form submitted",
		slog.String("action", form.Action),
		slog.String("email", strings.TrimSpace(form.Email)),
	)

	values := LoginFormValues{
		Action:  form.Action,
		Email:   form.Email,
		Name:    form.Name,
		College: form.College,
	}

	user, err := h.service.HandleLogin(r.Context(), form)
	if err != nil {
		apiErr, ok := asAPIError(err)
		if !ok {
			slog.Error("unexpected login error", slog.String("error", err.Error()))
			apiErr = model.NewDatabaseError()
		}
		h.renderLoginError(w, mapAPIErrorToHTTPStatus(apiErr), values, apiErr.Message)
		return
	}

	if err := h.sessions.Establish(w, r, *user); err != nil {
		slog.Error("failed to establish session",
			slog.String("email", user.Email),
			slog.String("error", err.Error()),
		)
		h.renderLoginError(w, http.StatusInternalServerError, values, "Could not start your session. Please try again.")
		return
	}

	http.Redirect(w, r, MainPath, http.StatusSeeOther)
}

// Logout はセッションを破棄して /login へリダイレクトする。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		slog.Warn("failed to clear session", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, statusCode int, values LoginFormValues, message string) {
	h.renderer.Render(w, statusCode, PageLogin, PageData{
		Title: "Log in",
		Error: message,
		Form:  values,
	})
}

// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/typeboard/internal/model"
)

// LoginPath は未ログイン時のリダイレクト先。
const LoginPath = "/login"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// sessionUserContextKey はリクエストコンテキストにログイン済みユーザーを格納するためのキー。
var sessionUserContextKey = contextKey("session_user")

// SessionReader はリクエストからログイン済みユーザーを読み取るインターフェース。
// session.Storeの部分集合として定義する。
type SessionReader interface {
	Current(r *http.Request) (*model.SessionUser, bool)
}

// NewPageSessionMiddleware はHTMLページ用のセッションゲートを返す。
// 未ログインのリクエストは302で /login へリダイレクトする。
func NewPageSessionMiddleware(sessions SessionReader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := sessions.Current(r)
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSessionUser(r.Context(), user)))
		})
	}
}

// NewAPISessionMiddleware はJSON API用のセッションゲートを返す。
// 未ログインのリクエストには401と {"error":"Not logged in"} を返す。
func NewAPISessionMiddleware(sessions SessionReader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := sessions.Current(r)
			if !ok {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSessionUser(r.Context(), user)))
		})
	}
}

// SessionUserFromContext はリクエストコンテキストからログイン済みユーザーを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func SessionUserFromContext(ctx context.Context) (*model.SessionUser, error) {
	user, ok := ctx.Value(sessionUserContextKey).(*model.SessionUser)
	if !ok || user == nil || user.Email == "" {
		return nil, fmt.Errorf("session user not found in context")
	}
	return user, nil
}

// ContextWithSessionUser はコンテキストにログイン済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithSessionUser(ctx context.Context, user *model.SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserContextKey, user)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/typeboard/internal/middleware"
	"github.com/hitoshi/typeboard/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	GetInfo(ctx context.Context, email string) (*user.Info, error)
}

// UserHandler はユーザー情報参照のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// GetUserInfo はemailで指定されたユーザーのプロフィールを返す。
// GET /get_user_info?email=
func (h *UserHandler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.GetInfo(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		apiErr, ok := asAPIError(err)
		if !ok {
			slog.Error("unexpected user info error", slog.String("error", err.Error()))
			middleware.WriteInternalServerError(w)
			return
		}
		middleware.WriteErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, info)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/typeboard/internal/leaderboard"
	"github.com/hitoshi/typeboard/internal/middleware"
	"github.com/hitoshi/typeboard/internal/model"
)

// LeaderboardServiceInterface はランキングハンドラーが必要とするサービスインターフェース。
type LeaderboardServiceInterface interface {
	Get(ctx context.Context, college string) ([]model.LeaderboardEntry, error)
	Colleges(ctx context.Context) ([]string, error)
}

// LeaderboardHandler はランキング画面のHTTPハンドラー。
type LeaderboardHandler struct {
	service  LeaderboardServiceInterface
	renderer *Renderer
}

// NewLeaderboardHandler はLeaderboardHandlerを生成する。
func NewLeaderboardHandler(service LeaderboardServiceInterface, renderer *Renderer) *LeaderboardHandler {
	return &LeaderboardHandler{
		service:  service,
		renderer: renderer,
	}
}

// Show はランキングを表示する。
// GET /leaderboard?college=
//
// ランキングの取得に失敗した場合は空の表とエラーメッセージを500で表示する。
// カレッジ一覧の取得失敗は絞り込み欄が空になるだけで、ランキングは表示する。
func (h *LeaderboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.SessionUserFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
		return
	}

	college := leaderboard.NormalizeCollege(r.URL.Query().Get("college"))
	data := PageData{
		Title:       "Leaderboard",
		User:        user,
		Leaderboard: LeaderboardView{College: college},
	}

	colleges, err := h.service.Colleges(r.Context())
	if err != nil {
		slog.Warn("failed to list colleges", slog.String("error", err.Error()))
	}
	data.Leaderboard.Colleges = colleges

	entries, err := h.service.Get(r.Context(), college)
	if err != nil {
		apiErr, ok := asAPIError(err)
		if !ok {
			apiErr = model.NewDatabaseError()
		}
		data.Error = apiErr.Message
		h.renderer.Render(w, mapAPIErrorToHTTPStatus(apiErr), PageLeaderboard, data)
		return
	}
	data.Leaderboard.Entries = entries

	h.renderer.Render(w, http.StatusOK, PageLeaderboard, data)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/typeboard/internal/metrics"
	"github.com/hitoshi/typeboard/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger         *slog.Logger
	Sessions       SessionStore
	RateLimiter    *middleware.RateLimiter
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
	HealthChecker  HealthChecker

	// 画面
	Renderer *Renderer

	// サービス
	AuthService        AuthServiceInterface
	ResultService      ResultServiceInterface
	LeaderboardService LeaderboardServiceInterface
	UserService        UserServiceInterface
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// 全ルート共通のミドルウェアの実行順序:
//
//	RequestID → Recovery → SecurityHeaders → Metrics → Logging
//
// ログイン画面と結果送信はセッション不要で、クライアントIP単位のレート制限のみをかける。
// ページ群はセッションゲートの後にユーザー単位のレート制限をかける。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := deps.Metrics
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewMetricsMiddleware(recorder))
	r.Use(middleware.NewLoggingMiddleware(logger, deps.Sessions))

	authHandler := NewAuthHandler(deps.AuthService, deps.Sessions, deps.Renderer)
	pageHandler := NewPageHandler(deps.Renderer)
	resultHandler := NewResultHandler(deps.ResultService)
	leaderboardHandler := NewLeaderboardHandler(deps.LeaderboardService, deps.Renderer)
	userHandler := NewUserHandler(deps.UserService)

	// --- 認証不要のルート ---

	r.Get("/", authHandler.LoginPage)
	r.Get("/login", authHandler.LoginPage)
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// 結果送信はセッションを要求しない（リクエストボディのemailでユーザーを特定する）
	r.With(deps.RateLimiter.SubmitMiddleware()).Post("/submit_result", resultHandler.Submit)

	if deps.HealthChecker != nil {
		r.Get("/health", NewHealthHandler(deps.HealthChecker))
	}
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
	r.Handle("/static/*", StaticHandler())

	// --- セッションが必要なページ ---
	// ミドルウェアスタック: PageSession → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewPageSessionMiddleware(deps.Sessions))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/main", pageHandler.Main)
		r.Get("/home", pageHandler.Main)
		r.Get("/leaderboard", leaderboardHandler.Show)
		r.Get("/about", pageHandler.About)
		r.Get("/contact", pageHandler.Contact)
	})

	// --- セッションが必要なJSON API ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAPISessionMiddleware(deps.Sessions))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/get_user_info", userHandler.GetUserInfo)
	})

	return r
}

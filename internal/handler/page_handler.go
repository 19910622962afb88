package handler

import (
	"net/http"

	"github.com/hitoshi/typeboard/internal/middleware"
)

// PageHandler はログイン後の静的なページを表示する。
type PageHandler struct {
	renderer *Renderer
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(renderer *Renderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

// Main はタイピングテスト画面を表示する。
// GET /main , GET /home
func (h *PageHandler) Main(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageMain, "Practice")
}

// About はAboutページを表示する。
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageAbout, "About")
}

// Contact はContactページを表示する。
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, PageContact, "Contact")
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, page, title string) {
	user, err := middleware.SessionUserFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
		return
	}
	h.renderer.Render(w, http.StatusOK, page, PageData{Title: title, User: user})
}

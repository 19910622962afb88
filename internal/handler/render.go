package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/hitoshi/typeboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ページテンプレート名
const (
	PageLogin       = "login"
	PageMain        = "main"
	PageLeaderboard = "leaderboard"
	PageAbout       = "about"
	PageContact     = "contact"
)

var pageNames = []string{PageLogin, PageMain, PageLeaderboard, PageAbout, PageContact}

// PageData はレイアウトと各ページテンプレートに渡す値。
type PageData struct {
	Title string
	User  *model.SessionUser
	Error string

	// ログイン画面で再表示するフォーム値（sap_idは再表示しない）
	Form LoginFormValues

	Leaderboard LeaderboardView
}

// LoginFormValues はエラー時にログイン画面へ書き戻す入力値。
type LoginFormValues struct {
	Action  string
	Email   string
	Name    string
	College string
}

// LeaderboardView はランキング画面の表示内容。
type LeaderboardView struct {
	College  string
	Colleges []string
	Entries  []model.LeaderboardEntry
}

var templateFuncs = template.FuncMap{
	"rank": func(i int) int { return i + 1 },
}

// Renderer は埋め込みテンプレートからHTMLページを描画する。
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer は全ページのテンプレートを解析してRendererを生成する。
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render はページを描画してstatusCodeで書き込む。
// 描画に失敗した場合はレスポンスを書き込む前に500を返す。
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, page string, data PageData) {
	t, ok := r.pages[page]
	if !ok {
		slog.Error("unknown page template", slog.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	buf.WriteTo(w)
}

// StaticHandler は埋め込みの静的ファイル（JS, CSS）を /static/ 配下で配信する。
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

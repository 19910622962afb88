package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/typeboard/internal/auth"
	"github.com/hitoshi/typeboard/internal/middleware"
	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/result"
	"github.com/hitoshi/typeboard/internal/user"
)

// --- モック定義 ---

type mockAuthService struct {
	handleLoginFn func(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error)
}

func (m *mockAuthService) HandleLogin(ctx context.Context, form auth.LoginForm) (*model.SessionUser, error) {
	if m.handleLoginFn != nil {
		return m.handleLoginFn(ctx, form)
	}
	return &model.SessionUser{Email: form.Email, SapID: form.SapID}, nil
}

type mockResultService struct {
	submitFn func(ctx context.Context, sub result.Submission) (*model.TestResult, error)
}

func (m *mockResultService) Submit(ctx context.Context, sub result.Submission) (*model.TestResult, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, sub)
	}
	return &model.TestResult{ID: 1}, nil
}

type mockLeaderboardService struct {
	getFn      func(ctx context.Context, college string) ([]model.LeaderboardEntry, error)
	collegesFn func(ctx context.Context) ([]string, error)
}

func (m *mockLeaderboardService) Get(ctx context.Context, college string) ([]model.LeaderboardEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, college)
	}
	return nil, nil
}

func (m *mockLeaderboardService) Colleges(ctx context.Context) ([]string, error) {
	if m.collegesFn != nil {
		return m.collegesFn(ctx)
	}
	return nil, nil
}

type mockUserService struct {
	getInfoFn func(ctx context.Context, email string) (*user.Info, error)
}

func (m *mockUserService) GetInfo(ctx context.Context, email string) (*user.Info, error) {
	if m.getInfoFn != nil {
		return m.getInfoFn(ctx, email)
	}
	return nil, model.NewUserNotFoundError()
}

// fakeSessionStore はCookie値をemailとしてそのまま扱うSessionStore。
// 署名付きCookieストアと同じくサーバー側に状態を持たず、ログアウトはCookieの削除だけで表す。
type fakeSessionStore struct {
	users        map[string]*model.SessionUser
	established  []model.SessionUser
	cleared      int
	establishErr error
}

const testSessionCookie = "test_session"

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{users: map[string]*model.SessionUser{}}
}

func (f *fakeSessionStore) Current(r *http.Request) (*model.SessionUser, bool) {
	c, err := r.Cookie(testSessionCookie)
	if err != nil {
		return nil, false
	}
	u, ok := f.users[c.Value]
	return u, ok
}

func (f *fakeSessionStore) Establish(w http.ResponseWriter, r *http.Request, u model.SessionUser) error {
	if f.establishErr != nil {
		return f.establishErr
	}
	f.established = append(f.established, u)
	f.users[u.Email] = &u
	http.SetCookie(w, &http.Cookie{Name: testSessionCookie, Value: u.Email, Path: "/"})
	return nil
}

func (f *fakeSessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	f.cleared++
	http.SetCookie(w, &http.Cookie{Name: testSessionCookie, Value: "", Path: "/", MaxAge: -1})
	return nil
}

// login はストアにユーザーを登録し、そのセッションCookieをリクエストに付与する。
func (f *fakeSessionStore) login(req *http.Request, email string) *http.Request {
	f.users[email] = &model.SessionUser{Email: email, SapID: "60004200001"}
	req.AddCookie(&http.Cookie{Name: testSessionCookie, Value: email})
	return req
}

type fakePinger struct {
	err error
}

func (f *fakePinger) PingContext(ctx context.Context) error { return f.err }

var (
	_ AuthServiceInterface        = (*mockAuthService)(nil)
	_ ResultServiceInterface      = (*mockResultService)(nil)
	_ LeaderboardServiceInterface = (*mockLeaderboardService)(nil)
	_ UserServiceInterface        = (*mockUserService)(nil)
	_ SessionStore                = (*fakeSessionStore)(nil)
	_ HealthChecker               = (*fakePinger)(nil)
)

// --- ヘルパー ---

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

// withSessionUser はセッションミドルウェアを通過した状態のリクエストを作る。
func withSessionUser(req *http.Request, email string) *http.Request {
	ctx := middleware.ContextWithSessionUser(req.Context(), &model.SessionUser{Email: email, SapID: "60004200001"})
	return req.WithContext(ctx)
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

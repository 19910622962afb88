package user

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/repository"
)

// --- モック ---

type mockUserRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *mockUserRepo) FindByEmailOrSapID(ctx context.Context, email, sapID string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) FindByCredentials(ctx context.Context, email, sapID string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// --- テスト ---

func TestGetInfo_ReturnsProfile(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(_ context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, Name: "A", Email: email, SapID: "600", College: "NMIMS"}, nil
		},
	}
	svc := NewService(repo)

	info, err := svc.GetInfo(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Info{Name: "A", Email: "a@x.com", College: "NMIMS", SapID: "600"}
	if *info != want {
		t.Errorf("info = %+v, want %+v", *info, want)
	}
}

func TestGetInfo_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(Info{Name: "A", Email: "a@x.com", College: "C", SapID: "1"})
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	want := `{"name":"A","email":"a@x.com","college":"C","sapId":"1"}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

func TestGetInfo_UserNotFound(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	_, err := svc.GetInfo(context.Background(), "ghost@x.com")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeUserNotFound {
		t.Fatalf("expected USER_NOT_FOUND, got %v", err)
	}
}

func TestGetInfo_EmptyEmail(t *testing.T) {
	called := false
	repo := &mockUserRepo{
		findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
			called = true
			return nil, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.GetInfo(context.Background(), " ")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if apiErr.Message != "Email required" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if called {
		t.Error("repository must not be queried for an empty email")
	}
}

func TestGetInfo_RepositoryError(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
			return nil, errors.New("pq: too many connections")
		},
	}
	svc := NewService(repo)

	_, err := svc.GetInfo(context.Background(), "a@x.com")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeDatabase {
		t.Fatalf("expected DATABASE_ERROR, got %v", err)
	}
}

// Package user はユーザー情報の参照を提供する。
package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/repository"
)

// Info はクライアントへ返すユーザーのプロフィール。
type Info struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	College string `json:"college"`
	SapID   string `json:"sapId"`
}

// Service はユーザー情報参照のサービス層。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// GetInfo はemailに一致するユーザーのプロフィールを返す。
// 該当ユーザーがいない場合は USER_NOT_FOUND を返す。
func (s *Service) GetInfo(ctx context.Context, email string) (*Info, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, model.NewValidationError("Email required")
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Error("failed to find user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, model.NewDatabaseError()
	}
	if u == nil {
		return nil, model.NewUserNotFoundError()
	}

	return &Info{
		Name:    u.Name,
		Email:   u.Email,
		College: u.College,
		SapID:   u.SapID,
	}, nil
}

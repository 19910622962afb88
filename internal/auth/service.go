// Package auth はemailとsap_idによるログイン・サインアップを提供する。
//
// 認証情報は識別子の組（email, sap_id）そのものであり、パスワードは扱わない。
// セッションの発行は呼び出し側（ハンドラー）が session.Store を使って行う。
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hitoshi/typeboard/internal/metrics"
	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/repository"
	"github.com/hitoshi/typeboard/internal/security"
)

// ログインフォームのaction
const (
	ActionLogin  = "login"
	ActionSignup = "signup"
)

// LoginForm はログイン画面から送信されたフォーム値を表す。
// Name, College はサインアップ時のみ必須。
type LoginForm struct {
	Action  string
	Email   string
	SapID   string
	Name    string
	College string
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	sanitizer security.ProfileSanitizer
	metrics   metrics.Recorder
}

// NewService はServiceを生成する。
// recorderがnilの場合はメトリクスを記録しない。
func NewService(
	userRepo repository.UserRepository,
	sanitizer security.ProfileSanitizer,
	recorder metrics.Recorder,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		userRepo:  userRepo,
		sanitizer: sanitizer,
		metrics:   recorder,
	}
}

// HandleLogin はフォームのactionに応じてログインまたはサインアップを行い、
// 成功時にセッションへ保存するユーザー情報を返す。
//
// 失敗時は *model.APIError を返す:
//   - email, sap_id の欠落、サインアップ時の name, college の欠落、登録済み: VALIDATION_ERROR
//   - email と sap_id の組が一致しない: INVALID_CREDENTIALS
//   - action が login / signup 以外: INVALID_ACTION
//   - ストレージ層の失敗: DATABASE_ERROR
func (s *Service) HandleLogin(ctx context.Context, form LoginForm) (*model.SessionUser, error) {
	email := strings.TrimSpace(form.Email)
	sapID := strings.TrimSpace(form.SapID)

	if email == "" || sapID == "" {
		s.metrics.RecordLogin(metrics.LoginRejected)
		return nil, model.NewValidationError("Email and SAP ID are required.")
	}

	var err error
	switch form.Action {
	case ActionSignup:
		err = s.signup(ctx, email, sapID, form.Name, form.College)
	case ActionLogin:
		err = s.login(ctx, email, sapID)
	default:
		s.metrics.RecordLogin(metrics.LoginRejected)
		return nil, model.NewInvalidActionError(form.Action)
	}
	if err != nil {
		return nil, err
	}

	return &model.SessionUser{Email: email, SapID: sapID}, nil
}

// signup は重複確認のうえユーザーを作成する。
// 事前確認をすり抜けた同時サインアップは一意制約違反として同じエラーに変換する。
func (s *Service) signup(ctx context.Context, email, sapID, rawName, rawCollege string) error {
	name := s.sanitizer.Sanitize(rawName)
	college := s.sanitizer.Sanitize(rawCollege)
	if name == "" || college == "" {
		s.metrics.RecordLogin(metrics.LoginRejected)
		return model.NewValidationError("Name and College are required for signup.")
	}

	existing, err := s.userRepo.FindByEmailOrSapID(ctx, email, sapID)
	if err != nil {
		return s.databaseError("failed to check existing user", email, err)
	}
	if existing != nil {
		s.metrics.RecordLogin(metrics.LoginRejected)
		return model.NewUserExistsError()
	}

	user := &model.User{
		Name:    name,
		Email:   email,
		SapID:   sapID,
		College: college,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			s.metrics.RecordLogin(metrics.LoginRejected)
			return model.NewUserExistsError()
		}
		return s.databaseError("failed to create user", email, err)
	}

	slog.Info("new user signed up",
		slog.Int64("user_id", user.ID),
		slog.String("email", email),
		slog.String("college", college),
	)
	s.metrics.RecordSignup()
	s.metrics.RecordLogin(metrics.LoginSuccess)
	return nil
}

// login はemailとsap_idの組が登録済みかを確認する。
func (s *Service) login(ctx context.Context, email, sapID string) error {
	user, err := s.userRepo.FindByCredentials(ctx, email, sapID)
	if err != nil {
		return s.databaseError("failed to find user by credentials", email, err)
	}
	if user == nil {
		s.metrics.RecordLogin(metrics.LoginInvalidCredentials)
		return model.NewInvalidCredentialsError()
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("email", email),
	)
	s.metrics.RecordLogin(metrics.LoginSuccess)
	return nil
}

// databaseError はストレージ層のエラーをログに記録し、利用者向けの汎用エラーに置き換える。
func (s *Service) databaseError(msg, email string, err error) error {
	slog.Error(msg,
		slog.String("email", email),
		slog.String("error", err.Error()),
	)
	s.metrics.RecordLogin(metrics.LoginError)
	return model.NewDatabaseError()
}

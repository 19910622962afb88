// Package result はタイピングテスト結果の記録を提供する。
package result

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hitoshi/typeboard/internal/metrics"
	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/repository"
)

// Submission はクライアントから送信されたテスト結果。
// JSONで欠落したフィールドを検出するため数値はポインタで受ける。
type Submission struct {
	Email    string   `json:"email"`
	WPM      *int     `json:"wpm"`
	Accuracy *float64 `json:"accuracy"`
	RawWPM   *int     `json:"raw_wpm"`
}

// Service はテスト結果記録のサービス層。
type Service struct {
	userRepo   repository.UserRepository
	resultRepo repository.ResultRepository
	metrics    metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	resultRepo repository.ResultRepository,
	recorder metrics.Recorder,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		userRepo:   userRepo,
		resultRepo: resultRepo,
		metrics:    recorder,
	}
}

// Submit はemailからユーザーを特定し、テスト結果を1行記録する。
// 値の範囲は検証しない（負の値もそのまま記録する）。
func (s *Service) Submit(ctx context.Context, sub Submission) (*model.TestResult, error) {
	email := strings.TrimSpace(sub.Email)
	if email == "" || sub.WPM == nil || sub.Accuracy == nil || sub.RawWPM == nil {
		return nil, model.NewValidationError("email, wpm, accuracy and raw_wpm are required.")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Error("failed to find user for result",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, model.NewDatabaseError()
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	result := &model.TestResult{
		UserID:   user.ID,
		WPM:      *sub.WPM,
		Accuracy: *sub.Accuracy,
		RawWPM:   *sub.RawWPM,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		slog.Error("failed to record result",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewDatabaseError()
	}

	slog.Debug("result recorded",
		slog.Int64("user_id", user.ID),
		slog.Int64("result_id", result.ID),
		slog.Int("wpm", result.WPM),
	)
	s.metrics.RecordResult(result.WPM, result.Accuracy)
	return result, nil
}

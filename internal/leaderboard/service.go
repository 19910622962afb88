// Package leaderboard はユーザーごとの成績集計（ランキング）を提供する。
package leaderboard

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/hitoshi/typeboard/internal/metrics"
	"github.com/hitoshi/typeboard/internal/model"
	"github.com/hitoshi/typeboard/internal/repository"
)

// Service はランキング集計のサービス層。
type Service struct {
	repo    repository.LeaderboardRepository
	metrics metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.LeaderboardRepository, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{repo: repo, metrics: recorder}
}

// NormalizeCollege はクエリパラメータのカレッジ指定を正規化する。
// 空文字列は "all" として扱う。
func NormalizeCollege(college string) string {
	college = strings.TrimSpace(college)
	if college == "" {
		return model.CollegeAll
	}
	return college
}

// Get はランキングを最高wpm降順で返す。
// テスト結果のないユーザーも0として含まれる。
// 同じ最高wpm同士の並びはリポジトリの返却順を保つ。
func (s *Service) Get(ctx context.Context, college string) ([]model.LeaderboardEntry, error) {
	college = NormalizeCollege(college)

	entries, err := s.repo.Rankings(ctx, college)
	if err != nil {
		slog.Error("failed to load leaderboard",
			slog.String("college", college),
			slog.String("error", err.Error()),
		)
		return nil, model.NewDatabaseError()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].BestWPM > entries[j].BestWPM
	})

	s.metrics.RecordLeaderboardView(college)
	return entries, nil
}

// Colleges は絞り込みに使えるカレッジ名の一覧を返す。
func (s *Service) Colleges(ctx context.Context) ([]string, error) {
	colleges, err := s.repo.Colleges(ctx)
	if err != nil {
		slog.Error("failed to load colleges", slog.String("error", err.Error()))
		return nil, model.NewDatabaseError()
	}
	return colleges, nil
}

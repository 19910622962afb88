package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/typeboard/internal/model"
)

// PostgresLeaderboardRepo はusersとtest_resultsを集計するランキングリポジトリ。
type PostgresLeaderboardRepo struct {
	db *sql.DB
}

// NewPostgresLeaderboardRepo はPostgresLeaderboardRepoを生成する。
func NewPostgresLeaderboardRepo(db *sql.DB) *PostgresLeaderboardRepo {
	return &PostgresLeaderboardRepo{db: db}
}

// LEFT JOINにより結果0件のユーザーもCOALESCEで0として含まれる。
// $1がNULLの場合はカレッジで絞り込まない。
const rankingsQuery = `
SELECT
    u.name,
    u.college,
    COALESCE(MAX(t.wpm), 0)      AS best_wpm,
    COALESCE(AVG(t.accuracy), 0) AS avg_accuracy,
    COUNT(t.id)                  AS tests_taken
FROM users u
LEFT JOIN test_results t ON u.id = t.user_id
WHERE ($1::text IS NULL OR u.college = $1)
GROUP BY u.id, u.name, u.college
ORDER BY best_wpm DESC`

// Rankings はユーザーごとの集計結果を最高wpm降順で返す。
func (r *PostgresLeaderboardRepo) Rankings(ctx context.Context, college string) ([]model.LeaderboardEntry, error) {
	var filter sql.NullString
	if college != "" && college != model.CollegeAll {
		filter = sql.NullString{String: college, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, rankingsQuery, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.College, &e.BestWPM, &e.AvgAccuracy, &e.TestsTaken); err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rankings: %w", err)
	}

	return entries, nil
}

// Colleges は登録済みユーザーのカレッジ名を重複なしで昇順に返す。
func (r *PostgresLeaderboardRepo) Colleges(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT college FROM users ORDER BY college`)
	if err != nil {
		return nil, fmt.Errorf("failed to query colleges: %w", err)
	}
	defer rows.Close()

	colleges := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan college: %w", err)
		}
		colleges = append(colleges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate colleges: %w", err)
	}

	return colleges, nil
}

// compile-time interface check
var _ LeaderboardRepository = (*PostgresLeaderboardRepo)(nil)

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/typeboard/internal/model"
)

// PostgresResultRepo はPostgreSQLを使用したテスト結果リポジトリ。
type PostgresResultRepo struct {
	db *sql.DB
}

// NewPostgresResultRepo はPostgresResultRepoを生成する。
func NewPostgresResultRepo(db *sql.DB) *PostgresResultRepo {
	return &PostgresResultRepo{db: db}
}

// Create はテスト結果を1行追加する。test_dateはDB側のデフォルト（now()）を使う。
func (r *PostgresResultRepo) Create(ctx context.Context, result *model.TestResult) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO test_results (user_id, wpm, accuracy, raw_wpm)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, test_date`,
		result.UserID, result.WPM, result.Accuracy, result.RawWPM,
	).Scan(&result.ID, &result.TestDate)
	if err != nil {
		return fmt.Errorf("failed to insert test result: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ResultRepository = (*PostgresResultRepo)(nil)

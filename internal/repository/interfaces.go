// Package repository はデータ永続化のインターフェースとPostgreSQL実装を提供する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/typeboard/internal/model"
)

// ErrDuplicateUser は users の一意制約（email / sap_id）違反を表す。
// 同時サインアップの競合時に、一方の書き込みがこのエラーになる。
var ErrDuplicateUser = errors.New("user already exists")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail はemailでユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByEmailOrSapID はemailまたはsap_idのいずれかが一致するユーザーを取得する。
	// サインアップ時の重複確認に使う。見つからない場合はnilを返す。
	FindByEmailOrSapID(ctx context.Context, email, sapID string) (*model.User, error)

	// FindByCredentials はemailとsap_idの両方が一致するユーザーを取得する。
	// 見つからない場合はnilを返す。
	FindByCredentials(ctx context.Context, email, sapID string) (*model.User, error)

	// Create はユーザーを作成し、採番されたIDをuser.IDに設定する。
	// 一意制約違反の場合はErrDuplicateUserを返す。
	Create(ctx context.Context, user *model.User) error
}

// ResultRepository はテスト結果の永続化インターフェース。
type ResultRepository interface {
	// Create はテスト結果を1行追加し、採番されたIDと記録日時を設定する。
	Create(ctx context.Context, result *model.TestResult) error
}

// LeaderboardRepository はランキング集計のインターフェース。
type LeaderboardRepository interface {
	// Rankings はユーザーごとの最高wpm・平均正確率・受験回数を最高wpm降順で返す。
	// collegeが空または"all"の場合は全ユーザーを対象にする。
	Rankings(ctx context.Context, college string) ([]model.LeaderboardEntry, error)

	// Colleges は登録済みユーザーのカレッジ名を重複なしで昇順に返す。
	Colleges(ctx context.Context) ([]string, error)
}

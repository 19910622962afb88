// Package model はドメインモデルを定義する。
package model

// User はタイピング練習サービスの利用ユーザーを表す。
// email と sap_id はそれぞれ全ユーザーで一意。
type User struct {
	ID      int64
	Name    string
	Email   string
	SapID   string
	College string
}

// SessionUser はセッションに保持するログイン済みユーザーの識別情報。
type SessionUser struct {
	Email string
	SapID string
}

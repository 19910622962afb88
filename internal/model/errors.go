package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// HTMLフローではMessageをログイン画面等にインライン表示し、
// APIフローではJSONエンベロープとして返す。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, result, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidAction      = "INVALID_ACTION"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
)

// NewValidationError は入力不備エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "Check the form fields and try again.",
	}
}

// NewUserExistsError はemailまたはsap_idが登録済みの場合のエラーを生成する。
func NewUserExistsError() *APIError {
	return NewValidationError("User already exists with this email or SAP ID.")
}

// NewInvalidCredentialsError はemailとsap_idの組が一致しない場合のエラーを生成する。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "Invalid credentials. Please try again.",
		Category: "auth",
		Action:   "Check your email and SAP ID, or sign up first.",
	}
}

// NewInvalidActionError はログインフォームのactionが不正な場合のエラーを生成する。
func NewInvalidActionError(action string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidAction,
		Message:  fmt.Sprintf("Invalid action specified: %q", action),
		Category: "validation",
		Action:   "Use either the login or the signup form.",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: "auth",
		Action:   "Log in again.",
	}
}

// NewDatabaseError はストレージ層の失敗を表すエラーを生成する。
// ドライバのエラーメッセージはログにのみ記録し、ここには含めない。
func NewDatabaseError() *APIError {
	return &APIError{
		Code:     ErrCodeDatabase,
		Message:  "A database error occurred.",
		Category: "system",
		Action:   "Please wait a moment and try again.",
	}
}

// NewUnauthorizedError は未ログイン時のエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Not logged in",
		Category: "auth",
		Action:   "Log in first.",
	}
}

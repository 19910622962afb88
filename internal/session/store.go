// Package session は署名付きCookieによるログインセッションを提供する。
//
// セッションにはemailとsap_idのみを保持し、サーバー側には状態を持たない。
// 署名鍵は設定（SESSION_SECRET）から与えられ、プロセスの再起動をまたいで有効。
package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/hitoshi/typeboard/internal/model"
)

// CookieName はセッションCookieの名前。
const CookieName = "typeboard_session"

const (
	keyEmail = "email"
	keySapID = "sap_id"
)

// MinSecretLength は署名鍵として受け付ける最小バイト数。
const MinSecretLength = 32

// ErrWeakSecret は署名鍵が短すぎる場合のエラー。
var ErrWeakSecret = errors.New("session secret must be at least 32 bytes")

// Config はセッションストアの設定。
type Config struct {
	Secret []byte // Cookie署名鍵
	MaxAge int    // 有効期間（秒）
	Secure bool   // HTTPSのみで送信する
	Domain string // Cookie Domain属性（空の場合はホスト限定）
}

// Store はセッションの発行・参照・破棄を提供する。
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore はCookieStoreを生成する。
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	cs := sessions.NewCookieStore(cfg.Secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		Domain:   cfg.Domain,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	// 署名に含まれるタイムスタンプの有効期限もMaxAgeに揃える
	cs.MaxAge(cfg.MaxAge)

	return &Store{cookies: cs}, nil
}

// Establish はログイン済みユーザーのセッションを発行する。
// 既存のCookieが改ざん・期限切れであっても新しいセッションで上書きする。
func (s *Store) Establish(w http.ResponseWriter, r *http.Request, user model.SessionUser) error {
	sess, err := s.cookies.Get(r, CookieName)
	if err != nil {
		// Getはデコード失敗時も新しいセッションを返す
		slog.Debug("discarding unreadable session cookie", slog.String("error", err.Error()))
	}
	sess.Values[keyEmail] = user.Email
	sess.Values[keySapID] = user.SapID
	return sess.Save(r, w)
}

// Current はリクエストのセッションからログイン済みユーザーを返す。
// セッションがない、署名が不正、または期限切れの場合はfalseを返す。
func (s *Store) Current(r *http.Request) (*model.SessionUser, bool) {
	sess, err := s.cookies.Get(r, CookieName)
	if err != nil {
		return nil, false
	}
	email, _ := sess.Values[keyEmail].(string)
	sapID, _ := sess.Values[keySapID].(string)
	if email == "" {
		return nil, false
	}
	return &model.SessionUser{Email: email, SapID: sapID}, true
}

// Clear はセッションを破棄し、Cookieを削除する。
// セッションがない状態で呼んでもエラーにならない。
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, CookieName)
	delete(sess.Values, keyEmail)
	delete(sess.Values, keySapID)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

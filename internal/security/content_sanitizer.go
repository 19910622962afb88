// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ProfileSanitizer はサインアップ時に入力された氏名・カレッジ名から
// マークアップを除去し、プレーンテキストとして保存できる形に正規化する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ProfileSanitizer はユーザー入力テキストのサニタイズ機能のインターフェース。
type ProfileSanitizer interface {
	// Sanitize はHTMLタグを除去したプレーンテキストを返す。
	// script, styleタグは中身ごと除去する。
	// 前後の空白を取り除き、連続する空白は1つにまとめる。
	// 出力を再度Sanitizeしても変化しない（冪等）。
	Sanitize(raw string) string
}

// maxSanitizePasses はエンティティの多重エンコードを剥がす最大回数。
const maxSanitizePasses = 8

// markupChars は上限回数で収束しなかった入力から取り除く文字。
var markupChars = strings.NewReplacer("<", "", ">", "", "&", "")

// profileSanitizer はProfileSanitizerの実装。
// bluemondayのポリシーはスレッドセーフに共有できる。
type profileSanitizer struct {
	policy *bluemonday.Policy
}

// NewProfileSanitizer はタグを一切許可しないポリシーでProfileSanitizerを生成する。
func NewProfileSanitizer() ProfileSanitizer {
	return &profileSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize はHTMLタグを除去したプレーンテキストを返す。
// bluemondayはテキストをHTMLエスケープして返すため、保存前にアンエスケープする。
// アンエスケープで "&lt;b&gt;" のようなマークアップが現れるので、出力が変わらなくなるまで繰り返す。
// 表示時のエスケープはテンプレート側で行う。
func (s *profileSanitizer) Sanitize(raw string) string {
	text := raw
	for i := 0; i < maxSanitizePasses; i++ {
		next := s.pass(text)
		if next == text {
			return text
		}
		text = next
	}
	return s.pass(markupChars.Replace(text))
}

func (s *profileSanitizer) pass(raw string) string {
	if raw == "" {
		return ""
	}
	text := html.UnescapeString(s.policy.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

// typeboard はタイピング速度練習サービスのWebサーバー。
//
// 使い方:
//
//	typeboard [serve]     Webサーバーを起動する（デフォルト）
//	typeboard migrate     スキーマを初期化して終了する
//	typeboard healthcheck /health を確認する（Dockerヘルスチェック用）
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/typeboard/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

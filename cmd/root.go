package cmd

import (
	"log"
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-rank-exact/pkg/client"
)

// --- グローバル定数 ---

const (
	appName           = "rank-exact"
	defaultTimeoutSec = 10 // 秒
	defaultMaxRetries = 3  // デフォルトのリトライ回数

	// 全体処理のタイムアウト (HTTPタイムアウトが 0 の場合に利用)
	DefaultOverallTimeout = 60 * time.Second
	overallTimeoutFactor  = 3 // クライアントタイムアウトの3倍
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	TimeoutSec int // --timeout タイムアウト
	MaxRetries int // --max-retries リトライ回数
}

var Flags AppFlags
var globalClient *client.Client // ページ取得と webhook 送信で共有

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.Short = "引力引擎のランキングページから榜単を抽出するツール"
	rootCmd.Long = `保存済みのランキングページ (HTML / テキスト) またはURLから榜単を抽出し、CSV/JSON/SQLite に出力 (parse) したり、WeCom ロボットへ要約を送信 (notify) します。`

	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		defaultTimeoutSec,
		"HTTPリクエストのタイムアウト時間（秒）",
	)
	rootCmd.PersistentFlags().IntVar(
		&Flags.MaxRetries,
		"max-retries",
		defaultMaxRetries,
		"HTTPリクエストのリトライ最大回数",
	)
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// NOTE: clibase.Flags.Verbose はこの関数実行前に設定済み
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	timeout := time.Duration(Flags.TimeoutSec) * time.Second

	if clibase.Flags.Verbose {
		log.Printf("HTTPクライアントのタイムアウトを設定しました (Timeout: %s)。", timeout)
		log.Printf("HTTPクライアントのリトライ回数を設定しました (MaxRetries: %d)。", Flags.MaxRetries)
	}

	globalClient = client.New(
		timeout,
		client.WithMaxRetries(uint64(max(Flags.MaxRetries, 0))),
	)
	return nil
}

// GetGlobalClient は、初期化された共有クライアントを返します。
func GetGlobalClient() *client.Client {
	return globalClient
}

// overallTimeout はコマンド全体のタイムアウトを返します。
func overallTimeout() time.Duration {
	if Flags.TimeoutSec <= 0 {
		return DefaultOverallTimeout
	}
	return time.Duration(Flags.TimeoutSec) * overallTimeoutFactor * time.Second
}

// --- エントリポイント ---

// Execute は clibase.Execute を使用してルートコマンドを実行します。
func Execute() {
	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		parseCmd,
		notifyCmd,
	)
}

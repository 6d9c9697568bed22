package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-rank-exact/internal/pipeline"
	"github.com/shouni/go-rank-exact/pkg/notify"
	"github.com/shouni/go-rank-exact/pkg/store"
	"github.com/shouni/go-rank-exact/pkg/types"
)

const envWebhookURL = "WECOM_WEBHOOK_URL"

var (
	notifyFlags sourceFlags
	webhookURL  string
	dryRun      bool
)

// runNotifyPipeline は榜単ごとの要約を WeCom ロボットへ送信します。
func runNotifyPipeline(ctx context.Context, f *sourceFlags) error {
	meta, err := f.meta()
	if err != nil {
		return err
	}

	// 1. 送信先の準備 (dry-run では不要)
	var sender *notify.Sender
	if !dryRun {
		c := GetGlobalClient()
		if c == nil {
			return fmt.Errorf("HTTPクライアントの取得に失敗しました")
		}
		sender, err = notify.NewSender(c, webhookURL)
		if err != nil {
			return fmt.Errorf("webhookの設定エラー (--webhook または %s): %w", envWebhookURL, err)
		}
	}

	// 2. 榜単の抽出
	boards, err := loadBoards(ctx, f, os.Stdin)
	if err != nil {
		return err
	}
	rowsByBoard := pipeline.BuildRows(boards, meta, f.names(), f.section)

	// 3. 履歴がある場合は順位変化を付与 (保存はしない)
	if f.dbPath != "" {
		if err := fillRankChanges(ctx, f.dbPath, rowsByBoard); err != nil {
			return err
		}
	}

	// 4. 送信
	for i, rows := range rowsByBoard {
		title := pipeline.BoardName(f.names(), f.section, i)
		content := notify.BuildMarkdown(title, rows)

		if dryRun {
			fmt.Println(content)
			fmt.Println()
			continue
		}
		if err := sender.SendMarkdown(ctx, content); err != nil {
			return fmt.Errorf("榜単 %s の送信に失敗しました: %w", title, err)
		}
		if clibase.Flags.Verbose {
			log.Printf("送信しました: %s (%d 件)", title, len(rows))
		}
	}
	return nil
}

// fillRankChanges は履歴データベースを読み取り専用で使い、順位変化を埋めます。
func fillRankChanges(ctx context.Context, dbPath string, rowsByBoard [][]types.Row) (err error) {
	s, err := store.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("データベースのクローズに失敗しました: %w", cerr)
		}
	}()

	for _, rows := range rowsByBoard {
		if err := s.FillRankChanges(ctx, rows); err != nil {
			return err
		}
	}
	return nil
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "榜単の要約を WeCom ロボットへ送信します",
	Long:  `榜単を抽出し、榜単ごとに1通の markdown メッセージを WeCom グループロボットの webhook へ送信します。--dry-run では送信せずに内容を表示します。`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), overallTimeout())
		defer cancel()

		if err := runNotifyPipeline(ctx, &notifyFlags); err != nil {
			return fmt.Errorf("通知に失敗しました: %w", err)
		}
		return nil
	},
}

func init() {
	addSourceFlags(notifyCmd, &notifyFlags)
	notifyCmd.Flags().StringVar(&webhookURL, "webhook", os.Getenv(envWebhookURL), "WeCom ロボットの webhook URL (環境変数 "+envWebhookURL+")")
	notifyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "送信せずにメッセージを表示する")
}

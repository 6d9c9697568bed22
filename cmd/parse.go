package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-rank-exact/internal/pipeline"
	"github.com/shouni/go-rank-exact/pkg/export"
	"github.com/shouni/go-rank-exact/pkg/store"
	"github.com/shouni/go-rank-exact/pkg/types"
)

const (
	defaultOutputDir = "data"
	defaultPrefix    = "gravity_rankings"
)

var (
	parseFlags sourceFlags
	outputDir  string
	filePrefix string
	noTable    bool
)

// runParsePipeline は榜単の抽出から保存・出力までを実行するメインロジックです。
func runParsePipeline(ctx context.Context, f *sourceFlags) error {
	// 1. メタデータの検証
	meta, err := f.meta()
	if err != nil {
		return err
	}

	// 2. 榜単の抽出
	boards, err := loadBoards(ctx, f, os.Stdin)
	if err != nil {
		return err
	}
	if len(boards) == 0 {
		log.Printf("榜単が見つかりませんでした (section: %q)", f.section)
		return nil
	}
	rowsByBoard := pipeline.BuildRows(boards, meta, f.names(), f.section)

	// 3. 履歴との比較と保存 (--db 指定時のみ)
	if f.dbPath != "" {
		if err := persistRows(ctx, f.dbPath, rowsByBoard); err != nil {
			return err
		}
	}

	// 4. CSV/JSON の書き出しと表示
	for i, rows := range rowsByBoard {
		csvPath, jsonPath, err := export.WriteFiles(outputDir, filePrefix, i+1, rows)
		if err != nil {
			return fmt.Errorf("榜単 %d の書き出しに失敗しました: %w", i+1, err)
		}
		if clibase.Flags.Verbose {
			log.Printf("書き出しました: %s, %s (%d 件)", csvPath, jsonPath, len(rows))
		}
		if !noTable {
			renderBoard(os.Stdout, rows)
		}
	}
	log.Printf("%d 個の榜単を %s に出力しました。", len(rowsByBoard), outputDir)
	return nil
}

// persistRows は順位変化を履歴から埋めたうえで榜単を保存します。
func persistRows(ctx context.Context, dbPath string, rowsByBoard [][]types.Row) (err error) {
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
		if err := s.SaveRows(ctx, rows); err != nil {
			return err
		}
	}
	if clibase.Flags.Verbose {
		log.Printf("データベースに保存しました: %s", dbPath)
	}
	return nil
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "ランキングページから榜単を抽出し、CSV/JSON に出力します",
	Long: `保存済みのランキングページ (HTML / テキスト)、標準入力、または URL から榜単を抽出します。
キーワードで絞り込んだ結果を榜単ごとに {prefix}_{番号}.csv / .json として書き出し、
--db を指定すると SQLite に保存して前回との順位変化を算出します。`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), overallTimeout())
		defer cancel()

		if err := runParsePipeline(ctx, &parseFlags); err != nil {
			return fmt.Errorf("榜単の抽出に失敗しました: %w", err)
		}
		return nil
	},
}

func init() {
	addSourceFlags(parseCmd, &parseFlags)
	parseCmd.Flags().StringVarP(&outputDir, "output-dir", "o", defaultOutputDir, "出力ディレクトリ")
	parseCmd.Flags().StringVar(&filePrefix, "prefix", defaultPrefix, "出力ファイル名の接頭辞")
	parseCmd.Flags().BoolVar(&noTable, "no-table", false, "榜単の表を表示しない")
}

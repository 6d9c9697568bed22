package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"slices"
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-rank-exact/internal/pipeline"
	"github.com/shouni/go-rank-exact/pkg/extract"
	"github.com/shouni/go-rank-exact/pkg/rank"
	"github.com/shouni/go-rank-exact/pkg/types"
)

const (
	monitorDateLayout = "2006-01-02"
	defaultKeywords   = "益智,休闲"
	defaultSource     = "榜单"
	defaultPlatform   = "vx"
	envDBPath         = "GRAVITY_DB_PATH"
)

var validPlatforms = []string{"vx", "dy"}

// sourceFlags は parse / notify で共通の入力・解析フラグです。
type sourceFlags struct {
	input       string
	rawURL      string
	format      string
	section     string
	boards      int
	perBoard    int
	keywords    string
	topN        int
	noFilter    bool
	boardNames  string
	platform    string
	source      string
	monitorDate string
	dbPath      string
}

// addSourceFlags は共通フラグを cmd に登録します。
func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "入力ファイルのパス (未指定かつ --url もなければ標準入力)")
	fs.StringVarP(&f.rawURL, "url", "u", "", "ランキングページのURL (スキーム省略時は https)")
	fs.StringVar(&f.format, "format", "auto", "入力形式 (auto / html / text)")
	fs.StringVar(&f.section, "section", rank.DefaultSectionKeyword, "解析開始位置のキーワード")
	fs.IntVar(&f.boards, "boards", rank.DefaultBoards, "抽出する榜単の数")
	fs.IntVar(&f.perBoard, "per-board", rank.DefaultPerBoard, "1榜単あたりの件数")
	fs.StringVarP(&f.keywords, "keywords", "k", defaultKeywords, "絞り込みキーワード (カンマ区切り、空で無効)")
	fs.IntVar(&f.topN, "top-n", rank.DefaultTopN, "キーワード一致で残す最大件数")
	fs.BoolVar(&f.noFilter, "no-filter", false, "キーワードによる絞り込みを行わない")
	fs.StringVar(&f.boardNames, "board-names", "", "榜単名 (カンマ区切り、省略時は {section}{番号})")
	fs.StringVar(&f.platform, "platform", defaultPlatform, "平台 (vx / dy)")
	fs.StringVar(&f.source, "source", defaultSource, "来源")
	fs.StringVar(&f.monitorDate, "monitor-date", "", "監視日 YYYY-MM-DD (省略時は今日)")
	fs.StringVar(&f.dbPath, "db", os.Getenv(envDBPath), "SQLiteデータベースのパス (環境変数 "+envDBPath+")")
}

// options はフラグから解析オプションを組み立てます。
func (f *sourceFlags) options() rank.Options {
	opts := rank.Options{
		SectionKeyword: f.section,
		Boards:         f.boards,
		PerBoard:       f.perBoard,
		Keywords:       rank.ParseKeywords(f.keywords),
		TopN:           f.topN,
	}
	if f.noFilter {
		opts.Keywords = nil
	}
	return opts
}

// meta は監視日・平台を検証し、出力用のメタデータを返します。
func (f *sourceFlags) meta() (types.Meta, error) {
	if !slices.Contains(validPlatforms, f.platform) {
		return types.Meta{}, fmt.Errorf("無効な平台です。vx または dy を指定してください: %s", f.platform)
	}

	date := f.monitorDate
	if date == "" {
		date = time.Now().Format(monitorDateLayout)
	}
	if _, err := time.Parse(monitorDateLayout, date); err != nil {
		return types.Meta{}, fmt.Errorf("監視日の形式が不正です (YYYY-MM-DD): %s: %w", date, err)
	}

	return types.Meta{
		MonitorDate: date,
		Platform:    f.platform,
		Source:      f.source,
	}, nil
}

func (f *sourceFlags) names() []string {
	return rank.ParseKeywords(f.boardNames)
}

// producerFor は --format の値に対応する LineProducer を返します。
func producerFor(format string) (extract.LineProducer, error) {
	switch format {
	case "", "auto":
		return extract.AutoProducer, nil
	case "html":
		return extract.HTMLProducer, nil
	case "text":
		return extract.TextProducer, nil
	default:
		return nil, fmt.Errorf("無効な入力形式です。auto / html / text を指定してください: %s", format)
	}
}

// ensureScheme は、URLのスキームが存在しない場合に https:// を補完します。
func ensureScheme(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("URLのパースエラー: %w", err)
	}

	if parsedURL.Scheme != "" {
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return "", fmt.Errorf("無効なURLスキームです。httpまたはhttpsを指定してください: %s", rawURL)
		}
		return rawURL, nil
	}
	return "https://" + rawURL, nil
}

// loadBoards は --url / --input / 標準入力 のいずれかから榜単を組み立てます。
func loadBoards(ctx context.Context, f *sourceFlags, stdin io.Reader) ([]types.Board, error) {
	producer, err := producerFor(f.format)
	if err != nil {
		return nil, err
	}
	opts := f.options()

	// 1. URL 指定の場合は共有クライアントで取得
	if f.rawURL != "" {
		target, err := ensureScheme(f.rawURL)
		if err != nil {
			return nil, err
		}
		if clibase.Flags.Verbose {
			log.Printf("ランキングページを取得します: %s", target)
		}
		fetcher := GetGlobalClient()
		if fetcher == nil {
			return nil, fmt.Errorf("HTTPクライアントの取得に失敗しました")
		}
		return pipeline.ParseURL(ctx, fetcher, target, opts, producer)
	}

	// 2. ファイルまたは標準入力
	var body []byte
	if f.input != "" {
		body, err = os.ReadFile(f.input)
		if err != nil {
			return nil, fmt.Errorf("入力ファイルの読み込みに失敗しました (%s): %w", f.input, err)
		}
	} else {
		body, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("標準入力の読み取りエラー: %w", err)
		}
	}
	if clibase.Flags.Verbose {
		log.Printf("入力を読み込みました (%d バイト)", len(body))
	}
	return pipeline.ParseBytes(body, opts, producer)
}

package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shouni/go-rank-exact/pkg/export"
	"github.com/shouni/go-rank-exact/pkg/extract"
	"github.com/shouni/go-rank-exact/pkg/rank"
	"github.com/shouni/go-rank-exact/pkg/types"
)

// ParseBytes は保存済みページ (HTML またはテキスト) のバイト列から榜単を組み立てます。
// producer が nil の場合は extract.AutoProducer を使います。
func ParseBytes(body []byte, opts rank.Options, producer extract.LineProducer) ([]types.Board, error) {
	if producer == nil {
		producer = extract.AutoProducer
	}
	lines := producer.Lines(extract.DecodeBytes(body, ""))
	return parseLines(lines, opts)
}

// ParseURL はランキングページを取得し、榜単を組み立てるメインの処理パイプラインです。
func ParseURL(ctx context.Context, fetcher extract.Fetcher, url string, opts rank.Options, producer extract.LineProducer) ([]types.Board, error) {
	// 1. Extractor を初期化 (DI)
	extractor, err := extract.NewExtractor(fetcher, extract.WithProducer(producer))
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}

	// 2. 行の抽出
	lines, err := extractor.FetchAndExtractLines(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("ランキングページの抽出エラー: %w", err)
	}

	// 3. 榜単の組み立て
	return parseLines(lines, opts)
}

func parseLines(lines []string, opts rank.Options) ([]types.Board, error) {
	boards, err := rank.Parse(lines, opts)
	if err != nil {
		return nil, fmt.Errorf("榜単の解析エラー: %w", err)
	}
	return boards, nil
}

// BoardName は i 番目 (0始まり) の榜単名を返します。
// names に対応する名前がなければ "{section}{i+1}" (例: 月榜1) になります。
func BoardName(names []string, section string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	if section == "" {
		section = export.DefaultSource
	}
	return section + strconv.Itoa(i+1)
}

// BuildRows は各榜単を出力行に変換します。base の BoardName は榜単ごとに上書きされます。
func BuildRows(boards []types.Board, base types.Meta, names []string, section string) [][]types.Row {
	out := make([][]types.Row, 0, len(boards))
	for i, b := range boards {
		meta := base
		meta.BoardName = BoardName(names, section, i)
		out = append(out, export.ToRows(b, meta))
	}
	return out
}

package rank

import (
	"strings"

	"github.com/shouni/go-rank-exact/pkg/types"
)

// FindSectionStart は keyword を含む最初の行の次のインデックスを返します。
// keyword が空、または見つからない場合は 0 (先頭から解析) を返します。
func FindSectionStart(lines []string, keyword string) int {
	if keyword == "" {
		return 0
	}
	for i, ln := range lines {
		if strings.Contains(ln, keyword) {
			return i + 1
		}
	}
	return 0
}

// Parse は抽出済みのテキスト行から榜単を組み立てます。
// 分類 → セグメント分割 → 正規化 → キーワードフィルタの順に処理します。
// エラーになるのは opts が不正な場合のみで、想定外のテキストでは空の結果を返します。
func Parse(lines []string, opts Options) ([]types.Board, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := FindSectionStart(lines, opts.SectionKeyword)
	classified := ClassifyAll(lines[start:])

	boards, err := Segment(classified, opts.Boards, opts.PerBoard)
	if err != nil {
		return nil, err
	}

	boards = NormalizeAll(boards)
	for i, b := range boards {
		boards[i] = FilterTopN(b, opts.Keywords, opts.TopN)
	}
	return boards, nil
}

package rank

import (
	"strings"

	"github.com/shouni/go-rank-exact/pkg/types"
)

// FilterTopN は榜単の順序のまま前から走査し、主分類またはいずれかのタグが
// キーワードを部分文字列として含むレコードを最大 topN 件まで残します。
// keywords が空、または topN <= 0 の場合は board をそのまま返します。
func FilterTopN(board types.Board, keywords []string, topN int) types.Board {
	if len(keywords) == 0 || topN <= 0 {
		return board
	}

	selected := make(types.Board, 0, min(topN, len(board)))
	for _, rec := range board {
		if !matchesKeywords(rec, keywords) {
			continue
		}
		selected = append(selected, rec)
		if len(selected) >= topN {
			break
		}
	}
	return selected
}

func matchesKeywords(rec types.RankRecord, keywords []string) bool {
	primary := rec.PrimaryCategory()
	for _, kw := range keywords {
		if strings.Contains(primary, kw) {
			return true
		}
		for _, t := range rec.Tags {
			if strings.Contains(t, kw) {
				return true
			}
		}
	}
	return false
}

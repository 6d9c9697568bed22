package rank

import (
	"cmp"
	"slices"

	"github.com/shouni/go-rank-exact/pkg/types"
)

// Normalize は榜単の後処理を行います。
//   - 順位が未割り当てのレコードに、出現順で順位を補う (既存の順位は下限として扱う)
//   - タグの重複を除去し、会社が空なら "--" を補う
//   - 順位の昇順に並べ替え、重複した順位は直前の順位+1 に繰り上げる
//
// 入力は変更せず新しい Board を返します。2回適用しても結果は変わりません。
func Normalize(board types.Board) types.Board {
	out := make(types.Board, len(board))
	next := 1
	for i, rec := range board {
		rec.Tags = dedupTags(rec.Tags)
		if rec.Company == "" {
			rec.Company = types.PlaceholderCompany
		}
		if !rec.HasRank() {
			rec.Rank = next
		}
		next = max(next, rec.Rank+1)
		out[i] = rec
	}

	slices.SortStableFunc(out, func(a, b types.RankRecord) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	for i := 1; i < len(out); i++ {
		if out[i].Rank <= out[i-1].Rank {
			out[i].Rank = out[i-1].Rank + 1
		}
	}
	return out
}

// NormalizeAll はすべての榜単に Normalize を適用します。
func NormalizeAll(boards []types.Board) []types.Board {
	out := make([]types.Board, len(boards))
	for i, b := range boards {
		out[i] = Normalize(b)
	}
	return out
}

package rank

import (
	"fmt"

	"github.com/shouni/go-rank-exact/pkg/types"
)

// segmenter は分類済みの行列をレコードへ組み立て、perBoard 件ごとに榜単へ分割します。
// 状態 (自動採番カウンタ・現在のバッファ) はすべてこの構造体に閉じており、
// 1回の Segment 呼び出しごとに生成されます。
type segmenter struct {
	perBoard int
	want     int

	boards   []types.Board
	buf      types.Board
	cur      *types.RankRecord // nil の場合 Idle
	nextRank int
}

// Segment は行列を最大 boards 個の榜単に分割します。
// 解析はメモリ上の純粋な変換で、並行に呼び出しても安全です。
func Segment(lines []Line, boards, perBoard int) ([]types.Board, error) {
	if err := (Options{Boards: boards, PerBoard: perBoard}).Validate(); err != nil {
		return nil, err
	}

	s := &segmenter{perBoard: perBoard, want: boards, nextRank: 1}
	for i := 0; i < len(lines) && !s.done(); i++ {
		s.step(lines, i)
	}
	s.finalize()

	if len(s.buf) > 0 && !s.done() {
		s.boards = append(s.boards, s.buf)
		s.buf = nil
	}
	return s.boards, nil
}

func (s *segmenter) done() bool {
	return len(s.boards) >= s.want
}

// step は1行ぶん状態遷移を進めます。判定の優先順位は上から順です。
func (s *segmenter) step(lines []Line, i int) {
	ln := lines[i]

	if ln.Kind == KindRankMarker {
		s.finalize()
		s.cur = &types.RankRecord{Rank: ln.N}
		return
	}

	if s.cur == nil {
		// NO.x を持たない上位エントリ
		if IsConfirmedTitle(lines, i) {
			s.cur = &types.RankRecord{Name: ln.Text}
		}
		return
	}

	// ゲーム名が確定するまでの行は読み捨てる
	if s.cur.Name == "" {
		if IsConfirmedTitle(lines, i) {
			s.cur.Name = ln.Text
		}
		return
	}

	switch ln.Kind {
	case KindCategoryRank:
		// 先読みでの確認にのみ使用する構造行
	case KindDominateDays:
		s.cur.PublishDays = fmt.Sprintf("%d天", ln.N)
	case KindCompanyLike:
		s.cur.Company = ln.Text
	default:
		// 会社行の後に確定タイトルが来たら次のエントリ
		if s.cur.Company != "" && IsConfirmedTitle(lines, i) {
			s.finalize()
			s.cur = &types.RankRecord{Name: ln.Text}
			return
		}
		s.addTag(ln.Text)
	}
}

func (s *segmenter) addTag(tag string) {
	if !isUsableTag(tag) {
		return
	}
	for _, t := range s.cur.Tags {
		if t == tag {
			return
		}
	}
	s.cur.Tags = append(s.cur.Tags, tag)
}

// finalize は現在のレコードを確定してバッファへ積みます。
// 名前のないレコードは黙って破棄されます。
func (s *segmenter) finalize() {
	rec := s.cur
	s.cur = nil
	if rec == nil || rec.Name == "" || s.done() {
		return
	}

	if !rec.HasRank() {
		rec.Rank = s.nextRank
	}
	// NO.4 のような明示順位でもカウンタを進める
	s.nextRank = max(s.nextRank, rec.Rank+1)
	rec.Tags = dedupTags(rec.Tags)
	if rec.Company == "" {
		rec.Company = types.PlaceholderCompany
	}
	s.buf = append(s.buf, *rec)

	if len(s.buf) >= s.perBoard || rec.Rank == s.perBoard {
		s.boards = append(s.boards, s.buf)
		s.buf = nil
		s.nextRank = 1
	}
}

func isUsableTag(tag string) bool {
	return tag != "" && tag != types.PlaceholderCompany
}

// dedupTags は出現順を保ったまま重複・空・プレースホルダーを取り除きます。
func dedupTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if !isUsableTag(t) {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

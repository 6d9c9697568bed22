package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/go-rank-exact/pkg/rank"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		kind     rank.LineKind
		n        int
		category string
	}{
		{name: "rank_marker", line: "NO.4", kind: rank.KindRankMarker, n: 4},
		{name: "rank_marker_lowercase", line: "no.12", kind: rank.KindRankMarker, n: 12},
		{name: "rank_marker_with_space", line: "NO. 7", kind: rank.KindRankMarker, n: 7},
		{name: "rank_marker_fullwidth", line: "ＮＯ．４", kind: rank.KindRankMarker, n: 4},
		{name: "rank_marker_with_suffix_is_candidate", line: "NO.4a", kind: rank.KindCandidate},
		{name: "category_rank", line: "休闲:2名", kind: rank.KindCategoryRank, n: 2, category: "休闲"},
		{name: "category_rank_fullwidth_colon", line: "休闲：２名", kind: rank.KindCategoryRank, n: 2, category: "休闲"},
		{name: "dominate_days", line: "霸榜12天", kind: rank.KindDominateDays, n: 12},
		{name: "dominate_days_embedded", line: "已霸榜 3 天", kind: rank.KindDominateDays, n: 3},
		{name: "company_ltd", line: "北京简游科技有限公司", kind: rank.KindCompanyLike},
		{name: "company_studio", line: "星火工作室", kind: rank.KindCompanyLike},
		{name: "company_individual", line: "个人开发者", kind: rank.KindCompanyLike},
		{name: "company_placeholder", line: "--", kind: rank.KindCompanyLike},
		{name: "navigation_monthly", line: "月榜", kind: rank.KindNavigationNoise},
		{name: "navigation_back", line: "返回", kind: rank.KindNavigationNoise},
		{name: "candidate_title_with_fullwidth_colon", line: "羊了个羊：星球", kind: rank.KindCandidate},
		{name: "candidate_tag", line: "消除", kind: rank.KindCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rank.Classify(tt.line)
			assert.Equal(t, tt.kind, got.Kind, "kind = %s", got.Kind)
			assert.Equal(t, tt.n, got.N)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.line, got.Text, "元の文字列が保持されていません")
		})
	}
}

func TestClassifyAll_SkipsBlankLines(t *testing.T) {
	got := rank.ClassifyAll([]string{"  ", "消除", "", "NO.1"})
	if assert.Len(t, got, 2) {
		assert.Equal(t, "消除", got[0].Text)
		assert.Equal(t, rank.KindRankMarker, got[1].Kind)
	}
}

func TestIsConfirmedTitle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		idx   int
		want  bool
	}{
		{name: "title_followed_by_category_rank", lines: []string{"羊了个羊：星球", "休闲:2名"}, idx: 0, want: true},
		{name: "tag_followed_by_company", lines: []string{"消除", "北京简游科技有限公司"}, idx: 0, want: false},
		{name: "company_is_never_title", lines: []string{"北京简游科技有限公司", "休闲:1名"}, idx: 0, want: false},
		{name: "navigation_is_never_title", lines: []string{"月榜", "休闲:1名"}, idx: 0, want: false},
		{name: "last_line", lines: []string{"消除", "羊了个羊"}, idx: 1, want: false},
		{name: "out_of_range", lines: []string{"羊了个羊"}, idx: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := rank.ClassifyAll(tt.lines)
			assert.Equal(t, tt.want, rank.IsConfirmedTitle(lines, tt.idx))
		})
	}
}

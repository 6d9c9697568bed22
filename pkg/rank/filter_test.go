package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/go-rank-exact/pkg/rank"
	"github.com/shouni/go-rank-exact/pkg/types"
)

func sampleBoard() types.Board {
	return types.Board{
		{Rank: 1, Name: "羊了个羊", Tags: []string{"消除", "休闲"}, Company: "北京简游科技有限公司"},
		{Rank: 2, Name: "和平精英", Tags: []string{"射击"}, Company: "腾讯"},
		{Rank: 3, Name: "脑洞大师", Tags: []string{"益智", "解谜"}, Company: "--"},
		{Rank: 4, Name: "开心消消乐", Tags: []string{"休闲益智"}, Company: "乐元素"},
		{Rank: 5, Name: "无标签", Company: "--"},
	}
}

func TestFilterTopN(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		topN     int
		want     []string
	}{
		{name: "no_keywords_returns_board", keywords: nil, topN: 10, want: []string{"羊了个羊", "和平精英", "脑洞大师", "开心消消乐", "无标签"}},
		{name: "zero_top_n_returns_board", keywords: []string{"休闲"}, topN: 0, want: []string{"羊了个羊", "和平精英", "脑洞大师", "开心消消乐", "无标签"}},
		{name: "matches_any_tag_in_board_order", keywords: []string{"益智"}, topN: 10, want: []string{"脑洞大师", "开心消消乐"}},
		{name: "substring_match", keywords: []string{"休闲"}, topN: 10, want: []string{"羊了个羊", "开心消消乐"}},
		{name: "truncates_at_top_n", keywords: []string{"益智", "休闲"}, topN: 2, want: []string{"羊了个羊", "脑洞大师"}},
		{name: "no_match", keywords: []string{"赛车"}, topN: 10, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rank.FilterTopN(sampleBoard(), tt.keywords, tt.topN)
			names := make([]string, 0, len(got))
			for _, rec := range got {
				names = append(names, rec.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterTopN_DoesNotResort(t *testing.T) {
	board := types.Board{
		{Rank: 7, Name: "后", Tags: []string{"休闲"}},
		{Rank: 2, Name: "前", Tags: []string{"休闲"}},
	}
	got := rank.FilterTopN(board, []string{"休闲"}, 5)
	assert.Equal(t, board, got)
}

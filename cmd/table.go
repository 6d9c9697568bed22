package cmd

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/shouni/go-rank-exact/pkg/types"
)

// renderBoard は1つの榜単を表として w に出力します。
func renderBoard(w io.Writer, rows []types.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if len(rows) > 0 {
		t.SetTitle(rows[0].BoardName)
	}
	t.AppendHeader(table.Row{"排名", "游戏名称", "游戏类型", "标签", "开发公司", "发布时间", "排名变化"})

	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Rank,
			r.Name,
			r.PrimaryCategory,
			strings.Join(r.Tags, ", "),
			r.Company,
			r.PublishDays,
			r.RankChange,
		})
	}
	t.AppendFooter(table.Row{"", "合计", len(rows)})

	t.SetStyle(table.StyleRounded)
	t.Render()
}

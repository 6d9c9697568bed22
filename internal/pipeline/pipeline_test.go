package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/go-rank-exact/internal/pipeline"
	"github.com/shouni/go-rank-exact/pkg/extract"
	"github.com/shouni/go-rank-exact/pkg/rank"
	"github.com/shouni/go-rank-exact/pkg/types"
)

type MockFetcher struct {
	body []byte
	err  error
}

func (m *MockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return m.body, m.err
}

const rankingPage = `<html><body>
<nav>首页</nav>
<div>月榜</div>
<ul>
  <li><span>NO.1</span><span>羊了个羊</span><span>休闲:1名</span><span>休闲</span><span>霸榜12天</span><span>北京简游科技有限公司</span></li>
  <li><span>NO.2</span><span>开心消消乐</span><span>消除:2名</span><span>益智</span><span>乐元素</span><span>--</span></li>
  <li><span>NO.3</span><span>王者荣耀</span><span>MOBA:1名</span><span>竞技</span><span>腾讯</span></li>
</ul>
</body></html>`

func opts() rank.Options {
	o := rank.DefaultOptions()
	o.Boards = 1
	return o
}

func TestParseBytes(t *testing.T) {
	boards, err := pipeline.ParseBytes([]byte(rankingPage), opts(), nil)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	require.Len(t, boards[0], 3)

	first := boards[0][0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "羊了个羊", first.Name)
	assert.Equal(t, "12天", first.PublishDays)
	assert.Equal(t, "北京简游科技有限公司", first.Company)
	assert.Equal(t, "休闲", first.PrimaryCategory())
}

func TestParseBytes_KeywordFilter(t *testing.T) {
	o := opts()
	o.Keywords = []string{"益智", "休闲"}
	boards, err := pipeline.ParseBytes([]byte(rankingPage), o, nil)
	require.NoError(t, err)
	require.Len(t, boards, 1)

	var names []string
	for _, r := range boards[0] {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"羊了个羊", "开心消消乐"}, names)
}

func TestParseBytes_InvalidOptions(t *testing.T) {
	o := opts()
	o.PerBoard = 0
	_, err := pipeline.ParseBytes([]byte(rankingPage), o, nil)
	assert.ErrorIs(t, err, rank.ErrInvalidOptions)
}

func TestParseURL(t *testing.T) {
	boards, err := pipeline.ParseURL(context.Background(), &MockFetcher{body: []byte(rankingPage)}, "https://example.com", opts(), extract.HTMLProducer)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Len(t, boards[0], 3)

	_, err = pipeline.ParseURL(context.Background(), &MockFetcher{err: errors.New("timeout")}, "https://example.com", opts(), nil)
	assert.ErrorContains(t, err, "timeout")

	_, err = pipeline.ParseURL(context.Background(), nil, "https://example.com", opts(), nil)
	assert.Error(t, err)
}

func TestBoardName(t *testing.T) {
	names := []string{"人气榜", ""}
	assert.Equal(t, "人气榜", pipeline.BoardName(names, "月榜", 0))
	assert.Equal(t, "月榜2", pipeline.BoardName(names, "月榜", 1))
	assert.Equal(t, "月榜3", pipeline.BoardName(names, "月榜", 2))
	assert.Equal(t, "榜单1", pipeline.BoardName(nil, "", 0))
}

func TestBuildRows(t *testing.T) {
	boards := []types.Board{
		{{Rank: 1, Name: "A", Tags: []string{"休闲"}}},
		{{Rank: 1, Name: "B"}},
	}
	rows := pipeline.BuildRows(boards, types.Meta{MonitorDate: "2025-06-01", Platform: "dy", Source: "榜单"}, []string{"畅销榜"}, "月榜")
	require.Len(t, rows, 2)
	assert.Equal(t, "畅销榜", rows[0][0].BoardName)
	assert.Equal(t, "月榜2", rows[1][0].BoardName)
	assert.Equal(t, "dy", rows[1][0].Platform)
	assert.Equal(t, 100, rows[0][0].HeatIndex)
}

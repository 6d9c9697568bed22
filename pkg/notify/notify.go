package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	textUtils "github.com/shouni/go-utils/text"

	"github.com/shouni/go-rank-exact/pkg/types"
)

// MaxContentBytes は WeCom ロボットが受け付ける markdown 本文の上限 (バイト) です。
const MaxContentBytes = 4096

// ErrEmptyContent は送信する本文が空の場合に返されます。
var ErrEmptyContent = errors.New("notify: 送信する本文が空です")

// Poster は JSON を POST してレスポンスボディを返すクライアントです。client.Client が満たします。
type Poster interface {
	PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error)
}

// WebhookError はロボットが errcode != 0 を返したことを表します。
type WebhookError struct {
	Code    int
	Message string
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("WeComロボットがメッセージを拒否しました (errcode: %d, errmsg: %s)", e.Code, e.Message)
}

type markdownBody struct {
	Content string `json:"content"`
}

type markdownPayload struct {
	MsgType  string       `json:"msgtype"`
	Markdown markdownBody `json:"markdown"`
}

type webhookResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// BuildMarkdown は1つの榜単の要約を markdown で組み立てます。
// 行は「順位. **名前** 主分類 · 開発会社」で、履歴による順位変化があれば末尾に付けます。
func BuildMarkdown(title string, rows []types.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", textUtils.NormalizeText(title))
	if len(rows) > 0 {
		fmt.Fprintf(&b, "> 监控日期: %s　平台: %s\n", rows[0].MonitorDate, rows[0].Platform)
	}
	if len(rows) == 0 {
		b.WriteString("(无数据)\n")
	}

	for _, r := range rows {
		b.WriteString(formatRow(r))
		b.WriteByte('\n')
	}
	return Truncate(strings.TrimRight(b.String(), "\n"), MaxContentBytes)
}

func formatRow(r types.Row) string {
	line := fmt.Sprintf("%d. **%s**", r.Rank, textUtils.NormalizeText(r.Name))
	if r.PrimaryCategory != "" {
		line += " " + r.PrimaryCategory
	}
	if r.Company != "" && r.Company != types.PlaceholderCompany {
		line += " · " + textUtils.NormalizeText(r.Company)
	}
	if r.RankChange != "" && r.RankChange != "--" {
		line += fmt.Sprintf(" <font color=\"comment\">%s</font>", r.RankChange)
	}
	return line
}

// Truncate は content を limit バイト以内に収めます。可能な限り行の境界で切り詰め、
// 1行目だけで上限を超える場合は UTF-8 の文字境界で切ります。
func Truncate(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	cut := content[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		return cut[:i]
	}
	return strings.ToValidUTF8(cut, "")
}

// Sender は WeCom ロボットの webhook に markdown メッセージを送信します。
type Sender struct {
	poster     Poster
	webhookURL string
}

// NewSender は Sender を生成します。
func NewSender(poster Poster, webhookURL string) (*Sender, error) {
	if poster == nil {
		return nil, fmt.Errorf("notify.NewSender: Poster cannot be nil")
	}
	if webhookURL == "" {
		return nil, fmt.Errorf("notify.NewSender: webhook URL が指定されていません")
	}
	return &Sender{poster: poster, webhookURL: webhookURL}, nil
}

// SendMarkdown は content を markdown メッセージとして送信します。
func (s *Sender) SendMarkdown(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyContent
	}

	payload := markdownPayload{
		MsgType:  "markdown",
		Markdown: markdownBody{Content: Truncate(content, MaxContentBytes)},
	}

	// 1. 送信
	body, err := s.poster.PostJSONAndFetchBytes(ctx, s.webhookURL, payload)
	if err != nil {
		return fmt.Errorf("webhookへの送信に失敗しました: %w", err)
	}

	// 2. レスポンスの検証
	var resp webhookResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("webhookレスポンスの解析に失敗しました: %w", err)
	}
	if resp.ErrCode != 0 {
		return &WebhookError{Code: resp.ErrCode, Message: resp.ErrMsg}
	}
	return nil
}

package client

import (
	"context"
	"net/http"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// ----------------------------------------------------------------------
// 定数とインターフェース
// ----------------------------------------------------------------------

const (
	// DefaultHTTPTimeout は、デフォルトのHTTPタイムアウトです。
	DefaultHTTPTimeout = 10 * time.Second
)

// Doer は、標準の *http.Client.Do()と互換性のあるHTTPクライアントのインターフェースを定義します。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client は httpkit.Client をラップし、ランキングページの取得と
// WeCom ロボットへの送信に使うメソッドを context 先頭の引数順で公開します。
// extract.Fetcher と notify.Poster の両方を満たします。
type Client struct {
	*httpkit.Client
}

// ----------------------------------------------------------------------
// 設定とコンストラクタ
// ----------------------------------------------------------------------

// ClientOption はClientの設定を行うための関数型です。
type ClientOption func(*Client)

// WithHTTPClient はカスタムのDoerを設定します。
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		httpkit.WithHTTPClient(doer)(c.Client)
	}
}

// WithMaxRetries は最大リトライ回数を設定します。
func WithMaxRetries(max uint64) ClientOption {
	return func(c *Client) {
		httpkit.WithMaxRetries(max)(c.Client)
	}
}

// New は新しいClientを初期化します。timeout が 0 以下の場合は DefaultHTTPTimeout を使います。
func New(timeout time.Duration, options ...ClientOption) *Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	c := &Client{
		Client: httpkit.New(timeout),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ----------------------------------------------------------------------
// httpkit メソッドの利用
// ----------------------------------------------------------------------

// FetchBytes はランキングページを取得し、生のバイト配列として返します。
// リトライは httpkit.Client が処理します。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Client.FetchBytes(ctx, url)
}

// PostJSONAndFetchBytes は data をJSONとしてPOSTし、レスポンスボディを返します。
func (c *Client) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	return c.Client.PostJSONAndFetchBytes(ctx, url, data)
}

// IsNonRetryableError は与えられたエラーが非リトライ対象のHTTPエラーであるかを判断します。
func IsNonRetryableError(err error) bool {
	return httpkit.IsNonRetryableError(err)
}

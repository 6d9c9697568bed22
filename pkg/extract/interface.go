package extract

import (
	"context"
)

// ----------------------------------------------------------------------
// 依存性の定義 (DIP)
// ----------------------------------------------------------------------

// Fetcher は、ランキングページの生バイト配列を取得する機能のインターフェースを定義します。
// Extractor は、この抽象に依存します。client.Client はこのインターフェースを満たします。
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// LineProducer は、生のテキストから可視テキスト行を取り出す機能を定義します。
// 榜単パーサーは結果の行列にのみ依存し、どう生成されたかには依存しません。
type LineProducer interface {
	Lines(raw string) []string
}

// LineProducerFunc は関数を LineProducer として扱うためのアダプターです。
type LineProducerFunc func(raw string) []string

func (f LineProducerFunc) Lines(raw string) []string { return f(raw) }

var (
	// HTMLProducer は入力を常にHTMLとして扱います。
	HTMLProducer LineProducer = LineProducerFunc(HTMLLines)
	// TextProducer は入力を常にプレーンテキストとして扱います。
	TextProducer LineProducer = LineProducerFunc(TextLines)
	// AutoProducer はタグの有無で HTML / プレーンテキストを切り替えます。
	AutoProducer LineProducer = LineProducerFunc(Lines)
)

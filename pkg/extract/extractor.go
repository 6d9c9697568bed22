package extract

import (
	"context"
	"fmt"
)

// Extractor は、Fetcher を使ってランキングページの取得と行抽出を管理します。
type Extractor struct {
	fetcher  Fetcher
	producer LineProducer
}

// Option は Extractor の設定を行うための関数型です。
type Option func(*Extractor)

// WithProducer は行抽出の方式を差し替えます。デフォルトは AutoProducer です。
func WithProducer(p LineProducer) Option {
	return func(e *Extractor) {
		if p != nil {
			e.producer = p
		}
	}
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher, opts ...Option) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("extract.NewExtractor: Fetcher cannot be nil")
	}
	e := &Extractor{
		fetcher:  fetcher,
		producer: AutoProducer,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// FetchAndExtractLines は指定されたURLからページを取得し、可視テキスト行を抽出します。
// 行が1つも取れなかった場合も空スライスを返すだけで、エラーにはしません。
func (e *Extractor) FetchAndExtractLines(ctx context.Context, url string) ([]string, error) {
	// 1. Fetcherから生のバイト配列を取得 (通信の責務)
	body, err := e.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("ページの取得に失敗しました (URL: %s): %w", url, err)
	}

	// 2. 文字コードを判定して行を抽出 (解析の責務)
	return e.ExtractLines(body), nil
}

// ExtractLines はバイト列を UTF-8 に変換し、設定された LineProducer で行を取り出します。
func (e *Extractor) ExtractLines(body []byte) []string {
	return e.producer.Lines(DecodeBytes(body, ""))
}

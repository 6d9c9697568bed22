package rank

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultSectionKeyword = "月榜"
	DefaultBoards         = 3
	DefaultPerBoard       = 20
	DefaultTopN           = 10
)

// ErrInvalidOptions は、呼び出し側のプログラミングミスによる設定エラーです。
// 入力テキストの品質に起因する問題ではこのエラーは返りません。
var ErrInvalidOptions = errors.New("rank: invalid options")

// Options は榜単解析のパラメータです。
type Options struct {
	// SectionKeyword を含む最初の行の直後から解析します。見つからない場合は先頭から解析します。
	SectionKeyword string
	Boards         int // 取得する榜単数
	PerBoard       int // 1榜単あたりの件数
	// Keywords が空の場合、キーワードフィルタは適用されません。
	Keywords []string
	// TopN <= 0 は件数制限なしを意味します。
	TopN int
}

// DefaultOptions は推奨されるデフォルト設定を返します。
func DefaultOptions() Options {
	return Options{
		SectionKeyword: DefaultSectionKeyword,
		Boards:         DefaultBoards,
		PerBoard:       DefaultPerBoard,
		TopN:           DefaultTopN,
	}
}

// Validate は fail-fast すべき設定エラーを検出します。
func (o Options) Validate() error {
	if o.PerBoard <= 0 {
		return fmt.Errorf("%w: perBoard must be positive, got %d", ErrInvalidOptions, o.PerBoard)
	}
	if o.Boards <= 0 {
		return fmt.Errorf("%w: boards must be positive, got %d", ErrInvalidOptions, o.Boards)
	}
	return nil
}

// ParseKeywords はカンマ区切りのキーワード文字列を分割します。空要素は捨てられます。
func ParseKeywords(raw string) []string {
	var kws []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			kws = append(kws, s)
		}
	}
	return kws
}

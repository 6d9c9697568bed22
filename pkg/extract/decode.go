package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const utf8BOM = "\ufeff"

// DecodeBytes は保存済みページや貼り付けテキストのバイト列を UTF-8 文字列に変換します。
//   - 有効な UTF-8 はそのまま (BOM は除去)
//   - BOM / Content-Type / <meta charset> から判定できる場合はその文字コード
//   - 判定できない場合は GB18030 とみなす (中国語環境でコピーしたテキスト)
//
// 変換できないバイトは捨てられ、エラーにはなりません。
func DecodeBytes(data []byte, contentType string) string {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), utf8BOM)
	}

	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if !certain && name == "windows-1252" {
		// DetermineEncoding の既定値。ロケールを考慮して GB18030 を優先する
		enc = simplifiedchinese.GB18030
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return strings.TrimPrefix(string(decoded), utf8BOM)
}

package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	textUtils "github.com/shouni/go-utils/text"
	"golang.org/x/net/html"
)

// ----------------------------------------------------------------------
// 定数定義 (解析関連のみ)
// ----------------------------------------------------------------------
const (
	// invisibleSelectors は可視テキストに含めない要素です。
	invisibleSelectors = "head, script, style, noscript, template, [hidden], [style*='display:none'], [style*='display: none']"
)

// tagRe は入力にHTMLタグらしきものが含まれるかを判定します。
var tagRe = regexp.MustCompile(`(?i)<(!doctype|/?[a-z][a-z0-9]*)(\s[^<>]*)?/?>`)

// LooksLikeHTML は raw がHTMLマークアップを含むかどうかを返します。
func LooksLikeHTML(raw string) bool {
	return tagRe.MatchString(raw)
}

// Lines は raw がHTMLなら HTMLLines、そうでなければ TextLines を適用します。
func Lines(raw string) []string {
	if LooksLikeHTML(raw) {
		return HTMLLines(raw)
	}
	return TextLines(raw)
}

// HTMLLines はHTMLから可視テキストを文書順の行列として抽出します。
// テキストノードごとに改行で分割し、各行の連続空白を1つにまとめ、空行は捨てます。
// 壊れたマークアップでも取り出せる範囲のテキストを返し、失敗はしません。
func HTMLLines(raw string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return TextLines(raw)
	}

	doc.Find(invisibleSelectors).Remove()

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			lines = appendLines(lines, n.Data)
			return
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return lines
}

// TextLines はプレーンテキストを行列に分割します。
func TextLines(raw string) []string {
	return appendLines(nil, raw)
}

func appendLines(lines []string, text string) []string {
	for _, ln := range strings.Split(text, "\n") {
		if ln = textUtils.NormalizeText(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

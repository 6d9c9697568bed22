package rank

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/shouni/go-rank-exact/pkg/types"
)

// LineKind は、1行が榜単テキストの中で担う構造上の役割です。
type LineKind int

const (
	KindCandidate       LineKind = iota // ゲーム名またはタグの候補 (文脈で決まる)
	KindRankMarker                      // "NO.4"
	KindCategoryRank                    // "休闲:2名"
	KindDominateDays                    // "霸榜12天"
	KindCompanyLike                     // "--" や "xxx有限公司"
	KindNavigationNoise                 // "月榜" "返回" など画面上のナビゲーション
)

func (k LineKind) String() string {
	switch k {
	case KindRankMarker:
		return "RankMarker"
	case KindCategoryRank:
		return "CategoryRank"
	case KindDominateDays:
		return "DominateDays"
	case KindCompanyLike:
		return "CompanyLike"
	case KindNavigationNoise:
		return "NavigationNoise"
	default:
		return "Candidate"
	}
}

var (
	rankMarkerRe   = regexp.MustCompile(`(?i)^NO\.\s*(\d+)$`)
	categoryRankRe = regexp.MustCompile(`^(.+?):\s*(\d+)\s*名$`)
	dominateDaysRe = regexp.MustCompile(`霸榜\s*(\d+)\s*天`)

	// companySuffixes は会社・開発者らしさを判定する語です。
	companySuffixes = []string{
		"有限公司",
		"有限责任公司",
		"股份有限公司",
		"公司",
		"工作室",
		"个人开发者",
	}

	// navigationTokens を含む行はゲーム名として扱いません。
	navigationTokens = []string{"月榜", "周榜", "日榜", "榜单", "排行榜", "返回", "登录"}
)

// Line は分類済みの1行です。
// N は RankMarker / CategoryRank / DominateDays の数値、Category は CategoryRank の分類名です。
type Line struct {
	Kind     LineKind
	Text     string
	N        int
	Category string
}

// Classify は1行を LineKind のいずれか1つに分類します。
// 全角英数字 (ＮＯ．４、休闲：２名) は判定前に半角へ畳み込みますが、Text は元の文字列を保持します。
func Classify(text string) Line {
	text = strings.TrimSpace(text)
	line := Line{Kind: KindCandidate, Text: text}
	if text == "" {
		return line
	}
	folded := width.Fold.String(text)

	if m := rankMarkerRe.FindStringSubmatch(folded); m != nil {
		line.Kind = KindRankMarker
		line.N = atoi(m[1])
		return line
	}
	if m := categoryRankRe.FindStringSubmatch(folded); m != nil {
		line.Kind = KindCategoryRank
		line.Category = strings.TrimSpace(m[1])
		line.N = atoi(m[2])
		return line
	}
	if m := dominateDaysRe.FindStringSubmatch(folded); m != nil {
		line.Kind = KindDominateDays
		line.N = atoi(m[1])
		return line
	}
	if isCompanyLike(text) {
		line.Kind = KindCompanyLike
		return line
	}
	if containsAny(text, navigationTokens) {
		line.Kind = KindNavigationNoise
	}
	return line
}

// ClassifyAll は行列全体を分類し、先読み可能なスライスとして返します。
func ClassifyAll(texts []string) []Line {
	lines := make([]Line, 0, len(texts))
	for _, t := range texts {
		l := Classify(t)
		if l.Text == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// IsConfirmedTitle は lines[i] がゲーム名として確定できるかを判定します。
// 行自体が Candidate であり、かつ次の空でない行が CategoryRank である場合のみ true です。
// 上位3件は NO.x 行を持たないことが多いため、行の形だけでは判定できません。
func IsConfirmedTitle(lines []Line, i int) bool {
	if i < 0 || i >= len(lines) || lines[i].Kind != KindCandidate {
		return false
	}
	for j := i + 1; j < len(lines); j++ {
		if lines[j].Text == "" {
			continue
		}
		return lines[j].Kind == KindCategoryRank
	}
	return false
}

func isCompanyLike(s string) bool {
	if s == types.PlaceholderCompany {
		return true
	}
	return containsAny(s, companySuffixes)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shouni/go-rank-exact/pkg/types"
)

const (
	DefaultPlatform   = "vx"
	DefaultSource     = "榜单"
	PlaceholderChange = "--"

	tagSeparator = "|"
	utf8BOM      = "\ufeff" // Excel で文字化けしないよう CSV の先頭に付与
)

// Header は CSV のヘッダー行です。
var Header = []string{
	"排名",
	"游戏名称",
	"游戏类型",
	"标签",
	"热度指数",
	"平台",
	"来源",
	"榜单",
	"监控日期",
	"发布时间",
	"开发公司",
	"排名变化",
}

// HeatIndex は順位から算出される人気指数です: max(0, 100 - (rank-1)*2)。
func HeatIndex(rank int) int {
	return max(0, 100-(rank-1)*2)
}

// ToRows は榜単をメタデータ付きの出力行に変換します。
// RankChange は常にプレースホルダーで、履歴がある場合は呼び出し側が上書きします。
func ToRows(board types.Board, meta types.Meta) []types.Row {
	platform := meta.Platform
	if platform == "" {
		platform = DefaultPlatform
	}
	source := meta.Source
	if source == "" {
		source = DefaultSource
	}

	rows := make([]types.Row, 0, len(board))
	for _, rec := range board {
		company := rec.Company
		if company == "" {
			company = types.PlaceholderCompany
		}
		row := types.Row{
			Rank:            rec.Rank,
			Name:            rec.Name,
			PrimaryCategory: rec.PrimaryCategory(),
			Tags:            append([]string{}, rec.Tags...),
			Platform:        platform,
			Source:          source,
			BoardName:       meta.BoardName,
			MonitorDate:     meta.MonitorDate,
			PublishDays:     rec.PublishDays,
			Company:         company,
			RankChange:      PlaceholderChange,
		}
		if rec.HasRank() {
			row.HeatIndex = HeatIndex(rec.Rank)
		}
		rows = append(rows, row)
	}
	return rows
}

// RankChange は前回順位との比較を表示用の文字列にします。
// 前回データがなければ "新"、変化なしは "-"、上昇は "↑n"、下降は "↓n" です。
func RankChange(prev, cur int, found bool) string {
	switch {
	case !found:
		return "新"
	case prev == cur:
		return "-"
	case prev > cur:
		return fmt.Sprintf("↑%d", prev-cur)
	default:
		return fmt.Sprintf("↓%d", cur-prev)
	}
}

// WriteCSV は BOM 付き UTF-8 の CSV を書き出します。
func WriteCSV(w io.Writer, rows []types.Row) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("BOMの書き込みに失敗しました: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("CSVヘッダーの書き込みに失敗しました: %w", err)
	}
	for _, r := range rows {
		record := []string{
			rankString(r.Rank),
			r.Name,
			r.PrimaryCategory,
			strings.Join(r.Tags, tagSeparator),
			heatString(r),
			r.Platform,
			r.Source,
			r.BoardName,
			r.MonitorDate,
			r.PublishDays,
			r.Company,
			r.RankChange,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("CSV行の書き込みに失敗しました (%s): %w", r.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON は行をインデント付きの JSON 配列として書き出します。
func WriteJSON(w io.Writer, rows []types.Row) error {
	if rows == nil {
		rows = []types.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("JSONのエンコードに失敗しました: %w", err)
	}
	return nil
}

// WriteFiles は {dir}/{prefix}_{index}.csv と .json を書き出し、作成したパスを返します。
func WriteFiles(dir, prefix string, index int, rows []types.Row) (csvPath, jsonPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("出力ディレクトリの作成に失敗しました (%s): %w", dir, err)
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%d", prefix, index))
	csvPath = base + ".csv"
	jsonPath = base + ".json"

	if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, rows) }); err != nil {
		return "", "", err
	}
	if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSON(w, rows) }); err != nil {
		return "", "", err
	}
	return csvPath, jsonPath, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ファイルの作成に失敗しました (%s): %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("ファイルのクローズに失敗しました (%s): %w", path, cerr)
		}
	}()
	return write(f)
}

func rankString(rank int) string {
	if rank <= 0 {
		return ""
	}
	return strconv.Itoa(rank)
}

func heatString(r types.Row) string {
	if r.Rank <= 0 {
		return ""
	}
	return strconv.Itoa(r.HeatIndex)
}

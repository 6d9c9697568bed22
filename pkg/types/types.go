package types

// PlaceholderCompany は、開発会社が見つからなかった場合に使用されるプレースホルダーです。
// ランキング元ページでも同じ表記が使われます。
const PlaceholderCompany = "--"

// RankRecord は、ランキング表の1エントリ（1ゲーム）を表します。
// セグメンターによって確定 (finalize) された後は変更されません。
type RankRecord struct {
	Rank        int      `json:"rank"`         // 榜単内の1始まりの順位。0 は未割り当て
	Name        string   `json:"name"`         // ゲーム名 (必須)
	Tags        []string `json:"tags"`         // 分類・キーワード。先頭要素が主分類
	Company     string   `json:"company"`      // 開発会社。未取得時は "--"
	PublishDays string   `json:"publish_days"` // 例: "12天"。見つからない場合は空文字列
}

// HasRank は順位が割り当て済みかどうかを返します。
func (r RankRecord) HasRank() bool {
	return r.Rank > 0
}

// PrimaryCategory は主分類 (Tags の先頭) を返します。タグがない場合は空文字列です。
func (r RankRecord) PrimaryCategory() string {
	if len(r.Tags) == 0 {
		return ""
	}
	return r.Tags[0]
}

// Board は1つのランキング表 (人気榜・畅销榜など) です。
type Board []RankRecord

// Meta は、出力時に各レコードへ付与される呼び出し元のメタデータです。
type Meta struct {
	MonitorDate string // YYYY-MM-DD
	Platform    string // vx / dy
	Source      string // 例: "榜单"
	BoardName   string // 例: "月榜1"
}

// Row は、CSV/JSON/DB へ出力される1行分の固定フィールドセットです。
type Row struct {
	Rank            int      `json:"rank"`
	Name            string   `json:"name"`
	PrimaryCategory string   `json:"primary_category"`
	Tags            []string `json:"tags"`
	HeatIndex       int      `json:"heat_index"`
	Platform        string   `json:"platform"`
	Source          string   `json:"source"`
	BoardName       string   `json:"board_name"`
	MonitorDate     string   `json:"monitor_date"`
	PublishDays     string   `json:"publish_days"`
	Company         string   `json:"company"`
	RankChange      string   `json:"rank_change"`
}

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/shouni/go-rank-exact/pkg/export"
	"github.com/shouni/go-rank-exact/pkg/types"
)

//go:embed schema.sql
var Schema string

const driverName = "sqlite"

// Store は監視日ごとの榜単を SQLite に保存し、順位変化の算出に使う履歴を提供します。
type Store struct {
	db *sql.DB
}

// Open はデータベースを開き、スキーマを適用します。path に ":memory:" も指定できます。
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("データベースのオープンに失敗しました (%s): %w", path, err)
	}
	// SQLite は単一接続で扱う (":memory:" は接続ごとに別DBになるため)
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマの適用に失敗しました: %w", err)
	}
	return &Store{db: db}, nil
}

// Close はデータベース接続を閉じます。
func (s *Store) Close() error {
	return s.db.Close()
}

type boardKey struct {
	monitorDate, platform, boardName string
}

// SaveRows は行を保存します。同じ (監視日, 平台, 榜単) の既存データは置き換えられます。
// 順位のない行は主キーを持たないため保存されません。
func (s *Store) SaveRows(ctx context.Context, rows []types.Row) (err error) {
	// 1. トランザクションの開始
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 2. 対象となる榜単の既存データを削除
	seen := make(map[boardKey]bool)
	for _, r := range rows {
		k := boardKey{r.MonitorDate, r.Platform, r.BoardName}
		if seen[k] {
			continue
		}
		seen[k] = true
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM rankings WHERE monitor_date = ? AND platform = ? AND board_name = ?`,
			k.monitorDate, k.platform, k.boardName,
		); err != nil {
			return fmt.Errorf("既存データの削除に失敗しました (%s): %w", k.boardName, err)
		}
	}

	// 3. Upsert
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rankings (
			monitor_date, platform, board_name, rank, name, primary_category, tags,
			heat_index, source, publish_days, company, rank_change, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(monitor_date, platform, board_name, rank) DO UPDATE SET
			name=excluded.name,
			primary_category=excluded.primary_category,
			tags=excluded.tags,
			heat_index=excluded.heat_index,
			source=excluded.source,
			publish_days=excluded.publish_days,
			company=excluded.company,
			rank_change=excluded.rank_change,
			updated_at=excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("upsert文の準備に失敗しました: %w", err)
	}
	defer stmt.Close()

	updatedAt := time.Now().Format(time.RFC3339)
	for _, r := range rows {
		if r.Rank <= 0 {
			log.Printf("順位がないため保存をスキップします: %s", r.Name)
			continue
		}
		tags, jerr := json.Marshal(nonNil(r.Tags))
		if jerr != nil {
			err = fmt.Errorf("タグのエンコードに失敗しました (%s): %w", r.Name, jerr)
			return err
		}
		if _, err = stmt.ExecContext(ctx,
			r.MonitorDate, r.Platform, r.BoardName, r.Rank, r.Name, r.PrimaryCategory, string(tags),
			r.HeatIndex, r.Source, r.PublishDays, r.Company, r.RankChange, updatedAt,
		); err != nil {
			return fmt.Errorf("行の保存に失敗しました (%s #%d): %w", r.BoardName, r.Rank, err)
		}
	}

	// 4. コミット
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗しました: %w", err)
	}
	return nil
}

// LoadRows は指定された榜単の行を順位順に返します。
func (s *Store) LoadRows(ctx context.Context, monitorDate, platform, boardName string) ([]types.Row, error) {
	rs, err := s.db.QueryContext(ctx, `
		SELECT rank, name, primary_category, tags, heat_index, source, publish_days, company, rank_change
		FROM rankings
		WHERE monitor_date = ? AND platform = ? AND board_name = ?
		ORDER BY rank`,
		monitorDate, platform, boardName,
	)
	if err != nil {
		return nil, fmt.Errorf("榜単の読み込みに失敗しました (%s): %w", boardName, err)
	}
	defer rs.Close()

	var rows []types.Row
	for rs.Next() {
		r := types.Row{
			Platform:    platform,
			BoardName:   boardName,
			MonitorDate: monitorDate,
		}
		var tags string
		if err := rs.Scan(&r.Rank, &r.Name, &r.PrimaryCategory, &tags, &r.HeatIndex,
			&r.Source, &r.PublishDays, &r.Company, &r.RankChange); err != nil {
			return nil, fmt.Errorf("行の読み込みに失敗しました: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
			return nil, fmt.Errorf("タグのデコードに失敗しました (%s): %w", r.Name, err)
		}
		rows = append(rows, r)
	}
	return rows, rs.Err()
}

// PreviousRank は before より前の直近の監視日における name の順位を返します。
func (s *Store) PreviousRank(ctx context.Context, platform, boardName, name, before string) (rank int, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT rank FROM rankings
		WHERE platform = ? AND board_name = ? AND name = ? AND monitor_date < ?
		ORDER BY monitor_date DESC, rank ASC
		LIMIT 1`,
		platform, boardName, name, before,
	).Scan(&rank)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("前回順位の取得に失敗しました (%s): %w", name, err)
	}
	return rank, true, nil
}

// FillRankChanges は各行の RankChange を履歴と比較した値で埋めます。
func (s *Store) FillRankChanges(ctx context.Context, rows []types.Row) error {
	for i := range rows {
		r := &rows[i]
		if r.Rank <= 0 {
			continue
		}
		prev, found, err := s.PreviousRank(ctx, r.Platform, r.BoardName, r.Name, r.MonitorDate)
		if err != nil {
			return err
		}
		r.RankChange = export.RankChange(prev, r.Rank, found)
	}
	return nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

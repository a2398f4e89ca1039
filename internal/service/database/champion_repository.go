package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ChampionSchema creates the export table. Safe to run repeatedly.
const ChampionSchema = `
CREATE TABLE IF NOT EXISTS champions (
	slug            TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	role            TEXT NOT NULL,
	rank_tier       TEXT NOT NULL,
	difficulty_tier TEXT NOT NULL,
	lanes           TEXT[] NOT NULL DEFAULT '{}',
	patch           TEXT NOT NULL,
	payload         JSONB NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const upsertChampionQuery = `
	INSERT INTO champions (slug, name, role, rank_tier, difficulty_tier, lanes, patch, payload, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	ON CONFLICT (slug) DO UPDATE SET
		name = EXCLUDED.name,
		role = EXCLUDED.role,
		rank_tier = EXCLUDED.rank_tier,
		difficulty_tier = EXCLUDED.difficulty_tier,
		lanes = EXCLUDED.lanes,
		patch = EXCLUDED.patch,
		payload = EXCLUDED.payload,
		updated_at = NOW()
`

// ChampionRow is the column projection of one exported champion.
type ChampionRow struct {
	Slug           string
	Name           string
	Role           string
	RankTier       string
	DifficultyTier string
	Lanes          []string
	Patch          string
	Payload        []byte
}

// NewChampionRow projects a champion onto the export columns.
func NewChampionRow(c *domain.Champion) (ChampionRow, error) {
	if c == nil || c.Identity.Slug == "" {
		return ChampionRow{}, errors.New("champion without slug")
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return ChampionRow{}, fmt.Errorf("encode champion %s: %w", c.Identity.Slug, err)
	}
	lanes := c.Classification.Lanes
	if lanes == nil {
		lanes = []string{}
	}
	return ChampionRow{
		Slug:           c.Identity.Slug,
		Name:           c.Identity.DisplayName,
		Role:           c.Classification.Role,
		RankTier:       c.Classification.Rank.String(),
		DifficultyTier: string(c.Classification.Difficulty),
		Lanes:          lanes,
		Patch:          c.Meta.Patch,
		Payload:        payload,
	}, nil
}

type ChampionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewChampionRepository(postgres *PostgresService, logger *zap.Logger) *ChampionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChampionRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (r *ChampionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, ChampionSchema); err != nil {
		return fmt.Errorf("failed to create champions table: %w", err)
	}
	return nil
}

// UpsertChampions writes every champion in one transaction and returns the row count.
func (r *ChampionRepository) UpsertChampions(ctx context.Context, champions []*domain.Champion) (int, error) {
	rows := make([]ChampionRow, 0, len(champions))
	for _, c := range champions {
		row, err := NewChampionRow(c)
		if err != nil {
			r.logger.Warn("Skipping champion export", zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertChampionQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.Slug, row.Name, row.Role, row.RankTier, row.DifficultyTier,
			pq.Array(row.Lanes), row.Patch, row.Payload,
		); err != nil {
			return 0, fmt.Errorf("failed to upsert champion %s: %w", row.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit champions: %w", err)
	}

	r.logger.Info("Champions exported", zap.Int("count", len(rows)))
	return len(rows), nil
}

// FindBySlug returns nil without error when the slug was never exported.
func (r *ChampionRepository) FindBySlug(ctx context.Context, slug string) (*domain.Champion, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM champions WHERE slug = $1`, slug).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query champion %s: %w", slug, err)
	}

	var champion domain.Champion
	if err := json.Unmarshal(payload, &champion); err != nil {
		return nil, fmt.Errorf("failed to decode champion %s: %w", slug, err)
	}
	return &champion, nil
}

// ListSlugsByTier returns exported slugs of one rank tier, sorted.
func (r *ChampionRepository) ListSlugsByTier(ctx context.Context, tier domain.RankTier) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT slug FROM champions WHERE rank_tier = $1 ORDER BY slug`, tier.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list champions: %w", err)
	}
	defer rows.Close()

	slugs := []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

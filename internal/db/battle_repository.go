package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/turnbattle/internal/game/battle"
	"github.com/udisondev/turnbattle/internal/game/replay"
)

// ErrBattleNotFound is returned by Load for an unknown id.
var ErrBattleNotFound = errors.New("battle not found")

// BattleRepository хранит записи боёв в таблице battles.
// Состояния, планы, лог rng и события лежат в JSONB.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

// BattleSummary is a row of the battle list without the heavy JSONB columns.
type BattleSummary struct {
	ID          uuid.UUID
	Seed        int64
	Turns       int
	Winner      *int
	Fingerprint string
	CreatedAt   time.Time
}

// Save inserts a recording and returns its generated id.
func (r *BattleRepository) Save(ctx context.Context, rec *replay.Recording) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generating battle id: %w", err)
	}

	initial, err := json.Marshal(rec.Initial)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding initial state: %w", err)
	}
	plans, err := json.Marshal(rec.Plans)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding plans: %w", err)
	}
	rngLog, err := json.Marshal(rec.Rng)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding rng log: %w", err)
	}
	events, err := battle.MarshalEvents(rec.Events)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding events: %w", err)
	}
	final, err := json.Marshal(rec.Final)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding final state: %w", err)
	}

	var winner *int
	if w, ok := rec.Winner(); ok {
		v := int(w)
		winner = &v
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO battles (id, seed, turns, winner, fingerprint,
		                      initial_state, plans, rng_log, events, final_state)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, rec.Seed, rec.Turns(), winner, rec.Fingerprint,
		initial, plans, rngLog, events, final,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert battle: %w", err)
	}
	return id, nil
}

// Load reads a recording by id.
func (r *BattleRepository) Load(ctx context.Context, id uuid.UUID) (*replay.Recording, error) {
	var rec replay.Recording
	var initial, plans, rngLog, events, final []byte
	err := r.pool.QueryRow(ctx,
		`SELECT seed, fingerprint, initial_state, plans, rng_log, events, final_state
		 FROM battles WHERE id = $1`, id,
	).Scan(&rec.Seed, &rec.Fingerprint, &initial, &plans, &rngLog, &events, &final)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrBattleNotFound, id)
		}
		return nil, fmt.Errorf("query battle %s: %w", id, err)
	}

	if err := json.Unmarshal(initial, &rec.Initial); err != nil {
		return nil, fmt.Errorf("decoding initial state: %w", err)
	}
	if err := json.Unmarshal(plans, &rec.Plans); err != nil {
		return nil, fmt.Errorf("decoding plans: %w", err)
	}
	if err := json.Unmarshal(rngLog, &rec.Rng); err != nil {
		return nil, fmt.Errorf("decoding rng log: %w", err)
	}
	if rec.Events, err = battle.UnmarshalEvents(events); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	if err := json.Unmarshal(final, &rec.Final); err != nil {
		return nil, fmt.Errorf("decoding final state: %w", err)
	}
	return &rec, nil
}

// List returns the newest battles first.
func (r *BattleRepository) List(ctx context.Context, limit int) ([]BattleSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, seed, turns, winner, fingerprint, created_at
		 FROM battles ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query battles: %w", err)
	}
	defer rows.Close()

	var result []BattleSummary
	for rows.Next() {
		var s BattleSummary
		if err := rows.Scan(&s.ID, &s.Seed, &s.Turns, &s.Winner, &s.Fingerprint, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

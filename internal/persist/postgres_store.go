package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PostgresStore persists TownSnapshots as JSONB blobs in town_snapshots,
// following the reference service's pgx-pool-plus-goose-migration wiring (internal/persist/db.go,
// migrations.go) rather than a hand-rolled relational schema per actor field
// — the snapshot's shape changes along with npc.Actor during development,
// and a JSONB column avoids a migration for every new actor field.
type PostgresStore struct {
	db  *DB
	log *zap.Logger
}

func NewPostgresStore(db *DB, log *zap.Logger) *PostgresStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &PostgresStore{db: db, log: log}
}

func (s *PostgresStore) Save(ctx context.Context, snap TownSnapshot) error {
	actorsJSON, err := json.Marshal(snap.Actors)
	if err != nil {
		return fmt.Errorf("marshal actors: %w", err)
	}
	corpsesJSON, err := json.Marshal(snap.Corpses)
	if err != nil {
		return fmt.Errorf("marshal corpses: %w", err)
	}
	_, err = s.db.Pool.Exec(ctx,
		`INSERT INTO town_snapshots (town_id, turn, actors, corpses)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (town_id) DO UPDATE
		   SET turn = EXCLUDED.turn, saved_at = now(),
		       actors = EXCLUDED.actors, corpses = EXCLUDED.corpses`,
		snap.TownID, snap.Turn, actorsJSON, corpsesJSON,
	)
	if err != nil {
		return fmt.Errorf("save town snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, townID int) (TownSnapshot, bool, error) {
	var (
		turn              int
		actorsJSON        []byte
		corpsesJSON       []byte
	)
	row := s.db.Pool.QueryRow(ctx,
		`SELECT turn, actors, corpses FROM town_snapshots WHERE town_id = $1`, townID)
	if err := row.Scan(&turn, &actorsJSON, &corpsesJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TownSnapshot{}, false, nil
		}
		return TownSnapshot{}, false, fmt.Errorf("load town snapshot: %w", err)
	}

	snap := TownSnapshot{TownID: townID, Turn: turn}
	if err := json.Unmarshal(actorsJSON, &snap.Actors); err != nil {
		return TownSnapshot{}, false, fmt.Errorf("unmarshal actors: %w", err)
	}
	if err := json.Unmarshal(corpsesJSON, &snap.Corpses); err != nil {
		return TownSnapshot{}, false, fmt.Errorf("unmarshal corpses: %w", err)
	}
	return snap, true, nil
}

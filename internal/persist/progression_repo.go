package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/l1jgo/simcore/internal/geom"
	"github.com/l1jgo/simcore/internal/stats"
	"github.com/l1jgo/simcore/internal/world"
)

// ProgressionRepo stores player snapshots. Level is never stored.
type ProgressionRepo struct {
	db *DB
}

func NewProgressionRepo(db *DB) *ProgressionRepo {
	return &ProgressionRepo{db: db}
}

// Save upserts the character row and replaces its equipment in one transaction.
func (r *ProgressionRepo) Save(ctx context.Context, s world.Snapshot) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save %s begin: %w", s.Name, err)
	}
	defer tx.Rollback(ctx)

	a := s.Attributes
	if _, err := tx.Exec(ctx,
		`INSERT INTO characters (name, intellect, strength, dexterity, constitution,
		                         base_health, base_mana, base_speed, unspent_points,
		                         total_exp, hp, mp, pos_x, pos_y, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now())
		 ON CONFLICT (name) DO UPDATE SET
		     intellect = EXCLUDED.intellect, strength = EXCLUDED.strength,
		     dexterity = EXCLUDED.dexterity, constitution = EXCLUDED.constitution,
		     base_health = EXCLUDED.base_health, base_mana = EXCLUDED.base_mana,
		     base_speed = EXCLUDED.base_speed, unspent_points = EXCLUDED.unspent_points,
		     total_exp = EXCLUDED.total_exp, hp = EXCLUDED.hp, mp = EXCLUDED.mp,
		     pos_x = EXCLUDED.pos_x, pos_y = EXCLUDED.pos_y, updated_at = now()`,
		s.Name, a.Intellect, a.Strength, a.Dexterity, a.Constitution,
		a.BaseHealth, a.BaseMana, a.BaseSpeed, s.Unspent,
		s.TotalExp, s.HP, s.MP, s.Pos.X, s.Pos.Y,
	); err != nil {
		return fmt.Errorf("save %s: %w", s.Name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM character_equipment WHERE character_name = $1`, s.Name); err != nil {
		return fmt.Errorf("save %s equipment: %w", s.Name, err)
	}
	batch := &pgx.Batch{}
	for slot, item := range s.Equipment {
		batch.Queue(`INSERT INTO character_equipment (character_name, slot, item_name) VALUES ($1, $2, $3)`,
			s.Name, string(slot), item)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("save %s equipment: %w", s.Name, err)
		}
	}

	return tx.Commit(ctx)
}

// Load returns the stored snapshot for name, or ErrNotFound.
func (r *ProgressionRepo) Load(ctx context.Context, name string) (world.Snapshot, error) {
	s := world.Snapshot{Name: name, Equipment: map[stats.Slot]string{}}
	var a stats.Attributes
	var x, y float64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT intellect, strength, dexterity, constitution,
		        base_health, base_mana, base_speed, unspent_points,
		        total_exp, hp, mp, pos_x, pos_y
		 FROM characters WHERE name = $1`, name,
	).Scan(&a.Intellect, &a.Strength, &a.Dexterity, &a.Constitution,
		&a.BaseHealth, &a.BaseMana, &a.BaseSpeed, &s.Unspent,
		&s.TotalExp, &s.HP, &s.MP, &x, &y)
	if errors.Is(err, pgx.ErrNoRows) {
		return world.Snapshot{}, fmt.Errorf("load %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return world.Snapshot{}, fmt.Errorf("load %s: %w", name, err)
	}
	s.Attributes = a
	s.Pos = geom.V(x, y)

	rows, err := r.db.Pool.Query(ctx,
		`SELECT slot, item_name FROM character_equipment WHERE character_name = $1`, name)
	if err != nil {
		return world.Snapshot{}, fmt.Errorf("load %s equipment: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var slot, item string
		if err := rows.Scan(&slot, &item); err != nil {
			return world.Snapshot{}, fmt.Errorf("load %s equipment: %w", name, err)
		}
		s.Equipment[stats.Slot(slot)] = item
	}
	if err := rows.Err(); err != nil {
		return world.Snapshot{}, fmt.Errorf("load %s equipment: %w", name, err)
	}
	return s, nil
}

// Delete removes a character and its equipment.
func (r *ProgressionRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM characters WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s: %w", name, ErrNotFound)
	}
	return nil
}

// Package store persists gardens to a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/martinsantos/cannaval-sub000/internal/game"
)

// ErrNotFound is returned by Load when no garden was saved under the name.
var ErrNotFound = errors.New("garden not found")

const schema = `
CREATE TABLE IF NOT EXISTS gardens (
    name           TEXT PRIMARY KEY,
    seed           INTEGER NOT NULL,
    day            INTEGER NOT NULL,
    day_progress   REAL NOT NULL DEFAULT 0,
    max_plants     INTEGER NOT NULL,
    next_id        INTEGER NOT NULL,
    money          REAL NOT NULL DEFAULT 0,
    score          INTEGER NOT NULL DEFAULT 0,
    water          INTEGER NOT NULL DEFAULT 0,
    fertilizer     INTEGER NOT NULL DEFAULT 0,
    pesticide      INTEGER NOT NULL DEFAULT 0,
    base_temp_c    REAL NOT NULL,
    temp_swing_c   REAL NOT NULL,
    base_humidity  REAL NOT NULL,
    humidity_swing REAL NOT NULL,
    season_days    INTEGER NOT NULL DEFAULT 0,
    updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS plants (
    garden      TEXT NOT NULL,
    id          INTEGER NOT NULL,
    strain_id   TEXT NOT NULL,
    age_days    INTEGER NOT NULL,
    stage_index INTEGER NOT NULL,
    health      INTEGER NOT NULL,
    water       INTEGER NOT NULL,
    nutrients   INTEGER NOT NULL,
    pests       INTEGER NOT NULL DEFAULT 0,
    potted      INTEGER NOT NULL DEFAULT 1,
    environment TEXT NOT NULL DEFAULT 'indoor',
    vigor       INTEGER NOT NULL DEFAULT 0,
    bushiness   INTEGER NOT NULL DEFAULT 0,
    pruned      INTEGER NOT NULL DEFAULT 0,
    trimmed     INTEGER NOT NULL DEFAULT 0,
    trim_bonus  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (garden, id)
);

CREATE TABLE IF NOT EXISTS jars (
    garden          TEXT NOT NULL,
    id              INTEGER NOT NULL,
    strain_id       TEXT NOT NULL,
    grams           INTEGER NOT NULL,
    initial_quality INTEGER NOT NULL,
    quality         INTEGER NOT NULL,
    days_in_jar     INTEGER NOT NULL,
    humidity        INTEGER NOT NULL,
    burped_today    INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (garden, id)
);

CREATE TABLE IF NOT EXISTS sales (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    garden    TEXT NOT NULL,
    day       INTEGER NOT NULL,
    strain_id TEXT NOT NULL,
    grams     INTEGER NOT NULL,
    quality   INTEGER NOT NULL,
    revenue   REAL NOT NULL,
    score     INTEGER NOT NULL,
    sold_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath in WAL mode and creates the
// schema if needed.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot stored under name in one transaction.
func (s *Store) Save(ctx context.Context, name string, g game.Garden) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin save %q: %w", name, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsertGarden = `
		INSERT INTO gardens (name, seed, day, day_progress, max_plants, next_id, money, score,
			water, fertilizer, pesticide, base_temp_c, temp_swing_c, base_humidity, humidity_swing, season_days, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			seed = excluded.seed,
			day = excluded.day,
			day_progress = excluded.day_progress,
			max_plants = excluded.max_plants,
			next_id = excluded.next_id,
			money = excluded.money,
			score = excluded.score,
			water = excluded.water,
			fertilizer = excluded.fertilizer,
			pesticide = excluded.pesticide,
			base_temp_c = excluded.base_temp_c,
			temp_swing_c = excluded.temp_swing_c,
			base_humidity = excluded.base_humidity,
			humidity_swing = excluded.humidity_swing,
			season_days = excluded.season_days,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, upsertGarden,
		name, g.Seed, g.Day, g.DayProgress, g.MaxPlants, g.NextID, g.Money, g.Score,
		g.Supplies.Water, g.Supplies.Fertilizer, g.Supplies.Pesticide,
		g.Climate.BaseTempC, g.Climate.TempSwingC, g.Climate.BaseHumidity, g.Climate.HumiditySwing, g.Climate.SeasonDays,
	); err != nil {
		return fmt.Errorf("store: save garden %q: %w", name, err)
	}

	for _, table := range []string{"plants", "jars"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE garden = ?", name); err != nil {
			return fmt.Errorf("store: clear %s for %q: %w", table, name, err)
		}
	}

	if len(g.Plants) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO plants (garden, id, strain_id, age_days, stage_index, health, water, nutrients,
				pests, potted, environment, vigor, bushiness, pruned, trimmed, trim_bonus)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare plant insert: %w", err)
		}
		defer stmt.Close()
		for _, p := range g.Plants {
			if _, err := stmt.ExecContext(ctx, name, p.ID, p.StrainID, p.AgeDays, p.StageIndex, p.Health, p.Water, p.Nutrients,
				p.Pests, p.Potted, string(p.Environment), p.Vigor, p.Bushiness, p.Pruned, p.Trimmed, p.TrimBonus); err != nil {
				return fmt.Errorf("store: save plant %d: %w", p.ID, err)
			}
		}
	}

	if len(g.Jars) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO jars (garden, id, strain_id, grams, initial_quality, quality, days_in_jar, humidity, burped_today)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("store: prepare jar insert: %w", err)
		}
		defer stmt.Close()
		for _, j := range g.Jars {
			if _, err := stmt.ExecContext(ctx, name, j.ID, j.StrainID, j.Grams, j.InitialQuality, j.Quality, j.DaysInJar, j.Humidity, j.BurpedToday); err != nil {
				return fmt.Errorf("store: save jar %d: %w", j.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit save %q: %w", name, err)
	}
	return nil
}

// Load returns the garden saved under name, or ErrNotFound.
func (s *Store) Load(ctx context.Context, name string) (game.Garden, error) {
	var g game.Garden
	err := s.db.QueryRowContext(ctx, `
		SELECT seed, day, day_progress, max_plants, next_id, money, score, water, fertilizer, pesticide,
			base_temp_c, temp_swing_c, base_humidity, humidity_swing, season_days
		FROM gardens WHERE name = ?`, name).Scan(
		&g.Seed, &g.Day, &g.DayProgress, &g.MaxPlants, &g.NextID, &g.Money, &g.Score,
		&g.Supplies.Water, &g.Supplies.Fertilizer, &g.Supplies.Pesticide,
		&g.Climate.BaseTempC, &g.Climate.TempSwingC, &g.Climate.BaseHumidity, &g.Climate.HumiditySwing, &g.Climate.SeasonDays,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Garden{}, fmt.Errorf("store: %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return game.Garden{}, fmt.Errorf("store: load garden %q: %w", name, err)
	}

	if g.Plants, err = s.loadPlants(ctx, name); err != nil {
		return game.Garden{}, err
	}
	if g.Jars, err = s.loadJars(ctx, name); err != nil {
		return game.Garden{}, err
	}
	return g, nil
}

func (s *Store) loadPlants(ctx context.Context, name string) ([]game.Plant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, strain_id, age_days, stage_index, health, water, nutrients, pests, potted,
			environment, vigor, bushiness, pruned, trimmed, trim_bonus
		FROM plants WHERE garden = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("store: load plants for %q: %w", name, err)
	}
	defer rows.Close()

	var plants []game.Plant
	for rows.Next() {
		var (
			p   game.Plant
			env string
		)
		if err := rows.Scan(&p.ID, &p.StrainID, &p.AgeDays, &p.StageIndex, &p.Health, &p.Water, &p.Nutrients,
			&p.Pests, &p.Potted, &env, &p.Vigor, &p.Bushiness, &p.Pruned, &p.Trimmed, &p.TrimBonus); err != nil {
			return nil, fmt.Errorf("store: scan plant: %w", err)
		}
		p.Environment = game.GrowEnvironment(env)
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

func (s *Store) loadJars(ctx context.Context, name string) ([]game.CuringJar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, strain_id, grams, initial_quality, quality, days_in_jar, humidity, burped_today
		FROM jars WHERE garden = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("store: load jars for %q: %w", name, err)
	}
	defer rows.Close()

	var jars []game.CuringJar
	for rows.Next() {
		var j game.CuringJar
		if err := rows.Scan(&j.ID, &j.StrainID, &j.Grams, &j.InitialQuality, &j.Quality, &j.DaysInJar, &j.Humidity, &j.BurpedToday); err != nil {
			return nil, fmt.Errorf("store: scan jar: %w", err)
		}
		jars = append(jars, j)
	}
	return jars, rows.Err()
}

// List returns the saved garden names, most recently saved first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM gardens ORDER BY updated_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("store: list gardens: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: scan garden name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a garden with its plants, jars and sales history.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin delete %q: %w", name, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, table := range []string{"plants", "jars", "sales"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE garden = ?", name); err != nil {
			return fmt.Errorf("store: delete %s for %q: %w", table, name, err)
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM gardens WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("store: delete garden %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: %q: %w", name, ErrNotFound)
	}
	return tx.Commit()
}

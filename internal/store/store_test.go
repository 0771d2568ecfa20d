package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/martinsantos/cannaval-sub000/internal/game"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.cannaval.db")
	s, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testGarden(t *testing.T) game.Garden {
	t.Helper()
	c := game.DefaultCatalog()
	g, err := game.NewGarden(game.GardenConfig{
		Seed:      99,
		Climate:   game.DefaultClimate(),
		Supplies:  game.Supplies{Water: 3, Fertilizer: 2, Pesticide: 1},
		MaxPlants: 4,
	})
	if err != nil {
		t.Fatalf("new garden: %v", err)
	}
	for _, id := range []string{"haze", "northern_lights"} {
		if _, err := g.SowPlant(c, id); err != nil {
			t.Fatalf("sow %s: %v", id, err)
		}
	}
	if _, err := g.AdvanceDays(c, 12); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := g.InfestPlant(2); err != nil {
		t.Fatalf("infest: %v", err)
	}
	jar := game.NewCuringJar("haze", 42, 77)
	jar.ID = g.NextID
	jar.BurpedToday = true
	g.NextID++
	g.Jars = append(g.Jars, jar)
	g.Money = 12.5
	g.DayProgress = 0.25
	return g
}

func TestOpenCreatesSchemaInWALMode(t *testing.T) {
	t.Parallel()
	s := testStore(t)

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}

	tables := map[string]bool{"gardens": false, "plants": false, "jars": false, "sales": false}
	rows, err := s.db.Query("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan table name: %v", err)
		}
		tables[name] = true
	}
	for name, found := range tables {
		if !found {
			t.Errorf("table %q not created", name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()
	want := testGarden(t)

	if err := s.Save(ctx, "main", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("garden changed across save/load:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()
	c := game.DefaultCatalog()
	g := testGarden(t)

	if err := s.Save(ctx, "main", g); err != nil {
		t.Fatalf("save: %v", err)
	}

	g.Plants = g.Plants[:1]
	g.Jars = nil
	if _, err := g.AdvanceDays(c, 3); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := s.Save(ctx, "main", g); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Plants) != 1 || len(got.Jars) != 0 {
		t.Fatalf("expected stale rows to be replaced, got %d plants %d jars", len(got.Plants), len(got.Jars))
	}
	if got.Day != g.Day || got.Plants[0].AgeDays != 15 {
		t.Fatalf("expected day %d and plant age 15, got day %d age %d", g.Day, got.Day, got.Plants[0].AgeDays)
	}
}

func TestLoadMissingGarden(t *testing.T) {
	t.Parallel()
	s := testStore(t)

	if _, err := s.Load(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()
	g := testGarden(t)

	for _, name := range []string{"alpha", "beta"} {
		if err := s.Save(ctx, name, g); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected two gardens, got %v", names)
	}

	if err := s.Delete(ctx, "alpha"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, "alpha"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted garden to be gone, got %v", err)
	}
	if _, err := s.Load(ctx, "beta"); err != nil {
		t.Fatalf("expected beta to survive, got %v", err)
	}
}

func TestSalesLedger(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	ctx := context.Background()

	sales := []game.Sale{
		{StrainID: "haze", Grams: 80, Quality: 60, Revenue: 576, Score: 480},
		{StrainID: "lowryder", Grams: 40, Quality: 90, Revenue: 432, Score: 360},
	}
	for i, sale := range sales {
		if err := s.RecordSale(ctx, "main", 20+i, sale); err != nil {
			t.Fatalf("record sale: %v", err)
		}
	}
	if err := s.RecordSale(ctx, "other", 5, sales[0]); err != nil {
		t.Fatalf("record sale: %v", err)
	}

	got, err := s.Sales(ctx, "main")
	if err != nil {
		t.Fatalf("sales: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two sales for main, got %d", len(got))
	}
	if got[1].Day != 21 || got[1].Sale != sales[1] {
		t.Fatalf("unexpected second sale %+v", got[1])
	}
}

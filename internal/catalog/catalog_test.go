package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/martinsantos/cannaval-sub000/internal/game"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Strains()) != len(game.BuiltInStrains()) {
		t.Fatalf("expected built-in strains, got %d", len(c.Strains()))
	}
}

func TestSaveLoadKeepsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.toml")
	want := game.DefaultCatalog()

	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got.Strains(), want.Strains()) {
		t.Fatalf("strains changed across save/load:\n got %+v\nwant %+v", got.Strains(), want.Strains())
	}
	if !reflect.DeepEqual(got.Stages(), want.Stages()) {
		t.Fatalf("stage table changed across save/load")
	}
}

func TestDecodeCustomStrainKeepsReferenceStages(t *testing.T) {
	data := []byte(`
[[strains]]
id = "blue_dream"
name = "Blue Dream"
type = "hybrid"

[strains.growth]
height_factor = 1.2
width_factor = 1.0
water_uptake = 7
nutrient_uptake = 3
yield_factor = 1.2

[strains.environment.temperature_c]
min = 20
max = 27

[strains.environment.humidity]
min = 40
max = 55
`)
	c, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	strain, ok := c.Strain("blue_dream")
	if !ok || strain.Growth.YieldFactor != 1.2 || strain.Environment.Humidity.Max != 55 {
		t.Fatalf("unexpected strain %+v", strain)
	}
	if len(c.Strains()) != 1 {
		t.Fatalf("expected only the file's strains, got %d", len(c.Strains()))
	}
	if c.Stages().FiniteDays() != game.ReferenceStages().FiniteDays() {
		t.Fatalf("expected reference stages when the file has none")
	}
}

func TestDecodeRejectsBrokenStageTable(t *testing.T) {
	data := []byte(`
[[stages]]
name = "Seed"
days = 3

[[stages]]
name = "Flower"
days = 10

[maturation]
early_stage = "Seed"
optimal_stage = "Flower"
`)
	_, err := Decode(data)
	if !errors.Is(err, game.ErrInvalidStageTable) {
		t.Fatalf("expected ErrInvalidStageTable for a bounded terminal stage, got %v", err)
	}

	if _, err := Decode([]byte("strains = [")); err == nil {
		t.Fatalf("expected malformed TOML to fail")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := Save(path, game.DefaultCatalog()); err != nil {
		t.Fatalf("save: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	single, err := game.NewCatalog(game.BuiltInStrains()[:1], game.ReferenceStages())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if err := Save(path, single); err != nil {
		t.Fatalf("save: %v", err)
	}

	select {
	case update := <-w.Updates:
		if update.Err != nil {
			t.Fatalf("reload: %v", update.Err)
		}
		if len(update.Catalog.Strains()) != 1 {
			t.Fatalf("expected reloaded catalog with one strain, got %d", len(update.Catalog.Strains()))
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}

func TestWatcherReportsBrokenEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := Save(path, game.DefaultCatalog()); err != nil {
		t.Fatalf("save: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("stages = ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case update := <-w.Updates:
		if update.Err == nil {
			t.Fatalf("expected broken edit to surface an error")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for reload")
	}
}

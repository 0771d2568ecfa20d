package game

import (
	"errors"
	"testing"
)

func TestNewCatalogRejectsBadInput(t *testing.T) {
	strains := BuiltInStrains()

	if _, err := NewCatalog(nil, ReferenceStages()); err == nil {
		t.Fatalf("expected empty strain list to fail")
	}
	if _, err := NewCatalog(append(strains, strains[0]), ReferenceStages()); err == nil {
		t.Fatalf("expected duplicate strain ids to fail")
	}

	broken := strains[1]
	broken.Growth.WaterUptake = 0
	if _, err := NewCatalog([]StrainDefinition{broken}, ReferenceStages()); err == nil {
		t.Fatalf("expected invalid strain to fail")
	}

	stages := ReferenceStages()
	stages.Maturation.OptimalStage = ""
	if _, err := NewCatalog(strains, stages); !errors.Is(err, ErrInvalidStageTable) {
		t.Fatalf("expected ErrInvalidStageTable, got %v", err)
	}
}

func TestCatalogStagesIsACopy(t *testing.T) {
	c := DefaultCatalog()
	stages := c.Stages()
	stages.Stages[0].Name = "Tampered"

	if got := c.StageName(0); got != "Seed" {
		t.Fatalf("expected catalog to be immune to caller edits, got %q", got)
	}
	if got := c.StageName(99); got != "" {
		t.Fatalf("expected empty name out of range, got %q", got)
	}
}

func TestCatalogStrainsSorted(t *testing.T) {
	c := DefaultCatalog()
	strains := c.Strains()
	for i := 1; i < len(strains); i++ {
		if strains[i-1].ID >= strains[i].ID {
			t.Fatalf("expected strains sorted by id, got %s before %s", strains[i-1].ID, strains[i].ID)
		}
	}
	if _, ok := c.Strain("haze"); !ok {
		t.Fatalf("expected haze in default catalog")
	}
}

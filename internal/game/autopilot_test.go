package game

import (
	"reflect"
	"testing"
)

func TestRunAutopilotGrowsToSale(t *testing.T) {
	c := DefaultCatalog()
	g := newTestGarden(t, Supplies{Water: 40, Fertilizer: 20, Pesticide: 3})

	res, err := RunAutopilot(c, &g, AutopilotPolicy{StrainID: "northern_lights", Plants: 1, MaxDays: 300})
	if err != nil {
		t.Fatalf("autopilot: %v", err)
	}
	if !res.Finished {
		t.Fatalf("expected the run to finish, got %+v", res)
	}
	if res.Sown != 1 || res.Harvested != 1 || len(res.Sales) != 1 {
		t.Fatalf("sown %d harvested %d sales %d", res.Sown, res.Harvested, len(res.Sales))
	}
	// Optimal window opens at age 131, then a full cure.
	if want := 131 + FullCureDays; res.Days != want {
		t.Fatalf("days = %d, want %d", res.Days, want)
	}
	if res.Revenue <= 0 || g.Money != res.Revenue || g.Score != res.Score {
		t.Fatalf("revenue %.2f money %.2f score %d/%d", res.Revenue, g.Money, res.Score, g.Score)
	}
	if len(g.Plants) != 0 || len(g.Jars) != 0 {
		t.Fatalf("expected an empty garden, got %d plants %d jars", len(g.Plants), len(g.Jars))
	}
	if g.Supplies.Water >= 40 || g.Supplies.Fertilizer >= 20 {
		t.Fatalf("expected supplies to be spent, got %+v", g.Supplies)
	}
}

func TestRunAutopilotIsDeterministic(t *testing.T) {
	c := DefaultCatalog()
	policy := AutopilotPolicy{StrainID: "haze", Plants: 2, PestChance: 0.05, Prune: true, Trim: true, MaxDays: 400}

	a := newTestGarden(t, Supplies{Water: 60, Fertilizer: 30, Pesticide: 5})
	b := newTestGarden(t, Supplies{Water: 60, Fertilizer: 30, Pesticide: 5})
	resA, err := RunAutopilot(c, &a, policy)
	if err != nil {
		t.Fatalf("autopilot a: %v", err)
	}
	resB, err := RunAutopilot(c, &b, policy)
	if err != nil {
		t.Fatalf("autopilot b: %v", err)
	}
	if !reflect.DeepEqual(resA, resB) || !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different runs")
	}
}

func TestRunAutopilotRespectsCapacityAndDayLimit(t *testing.T) {
	c := DefaultCatalog()
	g := newTestGarden(t, Supplies{Water: 10, Fertilizer: 10})

	res, err := RunAutopilot(c, &g, AutopilotPolicy{StrainID: "white_widow", Plants: 5, MaxDays: 10})
	if err != nil {
		t.Fatalf("autopilot: %v", err)
	}
	if res.Sown != 2 {
		t.Fatalf("sown = %d, want garden capacity 2", res.Sown)
	}
	if res.Finished || res.Days != 10 || res.Harvested != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if g.Day != 11 {
		t.Fatalf("garden day = %d, want 11", g.Day)
	}
}

func TestRunAutopilotRejectsBadPolicy(t *testing.T) {
	c := DefaultCatalog()
	for name, policy := range map[string]AutopilotPolicy{
		"unknown phase": {StrainID: "haze", HarvestAt: "whenever"},
		"too early":     {StrainID: "haze", HarvestAt: PhasePreMaturation},
	} {
		g := newTestGarden(t, Supplies{})
		if _, err := RunAutopilot(c, &g, policy); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}

	g := newTestGarden(t, Supplies{})
	if _, err := RunAutopilot(c, &g, AutopilotPolicy{StrainID: "nope"}); err == nil {
		t.Fatalf("expected unknown strain to fail")
	}
}

package game

import (
	"strings"
	"testing"
)

func TestCommandPlantWaitAndStatus(t *testing.T) {
	c := DefaultCatalog()
	g := newTestGarden(t, Supplies{Water: 1})

	res := g.ExecuteCommand(c, "plant white widow")
	if !res.Handled || !strings.Contains(res.Message, "Planted White Widow as plant 1") {
		t.Fatalf("unexpected plant result: %+v", res)
	}

	res = g.ExecuteCommand(c, "wait 3")
	if !res.Handled || res.DaysAdvanced != 3 {
		t.Fatalf("expected three days to pass, got %+v", res)
	}
	if g.Day != 4 {
		t.Fatalf("expected day 4, got %d", g.Day)
	}

	res = g.ExecuteCommand(c, "status")
	if !strings.Contains(res.Message, "Plant 1 white_widow") {
		t.Fatalf("expected plant in status, got: %s", res.Message)
	}
}

func TestCommandFailuresExplainThemselves(t *testing.T) {
	c := DefaultCatalog()
	g := newTestGarden(t, Supplies{})
	g.ExecuteCommand(c, "plant haze")

	res := g.ExecuteCommand(c, "water #1")
	if !res.Handled || !strings.Contains(res.Message, "no water left") {
		t.Fatalf("expected missing water explanation, got: %s", res.Message)
	}

	res = g.ExecuteCommand(c, "harvest 1")
	if !strings.Contains(res.Message, "ready in 124 days") {
		t.Fatalf("expected harvest countdown, got: %s", res.Message)
	}

	res = g.ExecuteCommand(c, "sell 7")
	if !strings.Contains(res.Message, "no such jar") {
		t.Fatalf("expected missing jar, got: %s", res.Message)
	}

	res = g.ExecuteCommand(c, "prune")
	if res.Message != "Usage: prune <plant>" {
		t.Fatalf("expected usage hint, got: %s", res.Message)
	}
}

func TestCommandUnknownIsNotHandled(t *testing.T) {
	c := DefaultCatalog()
	g := newTestGarden(t, Supplies{})

	for _, raw := range []string{"", "   ", "dance"} {
		if res := g.ExecuteCommand(c, raw); res.Handled {
			t.Fatalf("expected %q to be unhandled", raw)
		}
	}
	if res := g.ExecuteCommand(c, "HELP"); !res.Handled || !strings.Contains(res.Message, "harvest <plant>") {
		t.Fatalf("expected help text, got %+v", res)
	}
}

func TestParseTargetID(t *testing.T) {
	cases := map[string]int{
		"3":       3,
		"#4":      4,
		"p2":      2,
		"plant 5": 5,
		"jar 6":   6,
	}
	for raw, want := range cases {
		got, ok := parseTargetID(strings.Fields(raw))
		if !ok || got != want {
			t.Fatalf("%q: expected %d, got %d (%v)", raw, want, got, ok)
		}
	}
	if _, ok := parseTargetID([]string{"zero"}); ok {
		t.Fatalf("expected non numeric target to fail")
	}
}

func TestCommandWaitIsCapped(t *testing.T) {
	c := DefaultCatalog()
	g := newTestGarden(t, Supplies{})
	g.ExecuteCommand(c, "plant haze")

	res := g.ExecuteCommand(c, "wait 1000000000")
	if !res.Handled || res.DaysAdvanced != 0 || !strings.Contains(res.Message, "more than 365 days") {
		t.Fatalf("expected an oversized wait to be refused, got %+v", res)
	}
	if g.Day != 1 || g.Plants[0].AgeDays != 0 {
		t.Fatalf("refused wait moved the garden to day %d", g.Day)
	}

	res = g.ExecuteCommand(c, "wait 365")
	if res.DaysAdvanced != MaxWaitDays || g.Day != 366 {
		t.Fatalf("expected a full-year wait to run, got %+v at day %d", res, g.Day)
	}
}

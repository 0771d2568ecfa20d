package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// useTempGarden points the CLI at a throwaway database with a fixed seed.
func useTempGarden(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("CANNAVAL_DB_PATH", filepath.Join(dir, "garden.db"))
	t.Setenv("CANNAVAL_SEED", "4242")
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCmd(BuildInfo{Version: "test", Commit: "abc123", Date: "today"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("cannaval %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()

	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Fatalf("output missing %q:\n%s", w, out)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out := mustRun(t, "--version")
	assertContains(t, out, "cannaval test (abc123) today")
}

func TestPlantAdvanceStatus(t *testing.T) {
	useTempGarden(t)

	assertContains(t, mustRun(t, "plant", "northern_lights"), "Planted Northern Lights as plant 1.")
	assertContains(t, mustRun(t, "advance", "5"), "5 day(s) pass. Now day 6")

	out := mustRun(t, "status")
	assertContains(t, out, "Day 6.", "Plant 1 northern_lights", "(day 5)", "water 70", "nutrients 85")
}

func TestAdvanceRejectsBadDays(t *testing.T) {
	useTempGarden(t)

	if _, err := runCLI(t, "", "advance", "-3"); err == nil {
		t.Fatalf("expected negative days to fail")
	}
	if _, err := runCLI(t, "", "advance", "soon"); err == nil {
		t.Fatalf("expected non-numeric days to fail")
	}
	if _, err := runCLI(t, "", "advance", "--fraction", "400"); err == nil {
		t.Fatalf("expected an oversized fraction to fail")
	}
	assertContains(t, mustRun(t, "advance", "1000000000"), "Can't wait more than 365 days at once.")
	assertContains(t, mustRun(t, "status"), "Day 1.")
}

func TestAdvanceFractionCarries(t *testing.T) {
	useTempGarden(t)

	assertContains(t, mustRun(t, "advance", "--fraction", "0.5"), "Advanced 0 day(s); 0.50 of a day carried.")
	assertContains(t, mustRun(t, "advance", "--fraction", "0.75"), "Advanced 1 day(s); 0.25 of a day carried.")
	assertContains(t, mustRun(t, "status"), "Day 2.")
}

func TestDoRunsFreeText(t *testing.T) {
	useTempGarden(t)

	mustRun(t, "plant", "haze")
	assertContains(t, mustRun(t, "do", "water", "plant", "1"), "Plant 1: health")
	assertContains(t, mustRun(t, "status"), "water 19")

	assertContains(t, mustRun(t, "do", "wait", "a", "week"), "7 day(s) pass.")
	assertContains(t, mustRun(t, "do", "harvest", "1"), "Can't harvest")
}

func TestDoAsksWhenTargetMissing(t *testing.T) {
	useTempGarden(t)

	mustRun(t, "plant", "haze")
	mustRun(t, "plant", "lowryder")
	out := mustRun(t, "do", "water")
	assertContains(t, out, "1) water 1", "2) water 2")
}

func TestFullGrowAndSalesLedger(t *testing.T) {
	useTempGarden(t)

	assertContains(t, mustRun(t, "sales"), "No sales yet.")
	mustRun(t, "plant", "northern_lights")
	mustRun(t, "advance", "131")
	assertContains(t, mustRun(t, "do", "harvest", "plant", "1"), "curing in jar 2")
	assertContains(t, mustRun(t, "do", "sell", "jar", "2"), "Can't sell")
	mustRun(t, "advance", "14")
	assertContains(t, mustRun(t, "do", "sell", "jar", "2"), "Sold")

	out := mustRun(t, "sales")
	assertContains(t, out, "day 146", "northern_lights", "Total: $")
}

func TestPlayLoop(t *testing.T) {
	useTempGarden(t)

	out, err := runCLI(t, "plant white widow\nwait 3\n\nwater it\nquit\nstatus\n", "play")
	if err != nil {
		t.Fatalf("play: %v\n%s", err, out)
	}
	assertContains(t, out, "Planted White Widow as plant 1.", "3 day(s) pass.", "Plant 1: health", "Bye.")
	if strings.Contains(out, "Day 4. $") {
		t.Fatalf("commands after quit should not run:\n%s", out)
	}

	// Saved on the way.
	assertContains(t, mustRun(t, "status"), "Day 4.", "Plant 1 white_widow")
}

func TestGardensSelectListAndDelete(t *testing.T) {
	useTempGarden(t)

	mustRun(t, "plant", "haze")
	mustRun(t, "--garden", "balcony", "plant", "lowryder")

	out := mustRun(t, "gardens")
	assertContains(t, out, "default", "balcony")
	assertContains(t, mustRun(t, "--garden", "balcony", "status"), "Plant 1 lowryder")

	assertContains(t, mustRun(t, "gardens", "--delete", "balcony"), `Deleted garden "balcony".`)
	if _, err := runCLI(t, "", "gardens", "--delete", "balcony"); err == nil {
		t.Fatalf("expected deleting a missing garden to fail")
	}
}

func TestNewResetsGarden(t *testing.T) {
	useTempGarden(t)

	mustRun(t, "plant", "haze")
	assertContains(t, mustRun(t, "new"), `New garden "default" (seed 4242, 6 slots).`)
	assertContains(t, mustRun(t, "status"), "Nothing growing.")
}

func TestSimulate(t *testing.T) {
	useTempGarden(t)

	out := mustRun(t, "simulate", "--strain", "northern_lights", "--max-days", "300")
	assertContains(t, out, "Seed 4242:", "sowed 1, harvested 1, sold 1 jar(s)")

	if _, err := runCLI(t, "", "simulate", "--harvest-at", "pre_maturation"); err == nil {
		t.Fatalf("expected a pre-maturation harvest policy to fail")
	}

	// The stored garden is untouched.
	assertContains(t, mustRun(t, "status"), "Day 1.", "Nothing growing.")
}

func TestStrainsAndCatalogExport(t *testing.T) {
	dir := useTempGarden(t)

	assertContains(t, mustRun(t, "strains"), "northern_lights", "white_widow", "lowryder", "haze")

	path := filepath.Join(dir, "catalog.toml")
	assertContains(t, mustRun(t, "catalog", "export", path), "Wrote 4 strains")
	assertContains(t, mustRun(t, "catalog", "check", path), "4 strains", "ok.")
	assertContains(t, mustRun(t, "--catalog", path, "strains"), "northern_lights")

	if _, err := runCLI(t, "", "catalog", "check", filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected checking a missing file to fail")
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/martinsantos/cannaval-sub000/internal/catalog"
	"github.com/martinsantos/cannaval-sub000/internal/game"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	catalogPath := flag.String("catalog", "", "catalog TOML to document (default: built-in catalog)")
	out := flag.String("out", filepath.Join("docs", "reference", "catalog"), "output directory")
	flag.Parse()

	c := game.DefaultCatalog()
	if *catalogPath != "" {
		loaded, err := catalog.Load(*catalogPath)
		if err != nil {
			fatal(err)
		}
		c = loaded
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generateStrainsDoc(c),
		generateStagesDoc(c),
		generateTrichomesDoc(c),
	}
	for _, f := range files {
		path := filepath.Join(*out, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(*out, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Grow Catalog\n\n")
	b.WriteString("Generated from the active catalog using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateStrainsDoc(c *game.Catalog) docFile {
	items := c.Strains()

	var b strings.Builder
	b.WriteString("# Strains\n\n")
	b.WriteString("Source: `internal/game/strain.go` (`BuiltInStrains`) or the catalog file.\n\n")
	b.WriteString(fmt.Sprintf("Total strains: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | Type | Height | Width | Water /day | Nutrients /day | Yield | Temp (°C) | Humidity (%) |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, s := range items {
		b.WriteString("| ")
		b.WriteString(escape(s.ID))
		b.WriteString(" | ")
		b.WriteString(escape(s.Name))
		b.WriteString(" | ")
		b.WriteString(escape(string(s.Type)))
		b.WriteString(" | ")
		b.WriteString(formatFloat(s.Growth.HeightFactor))
		b.WriteString(" | ")
		b.WriteString(formatFloat(s.Growth.WidthFactor))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(s.Growth.WaterUptake))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(s.Growth.NutrientUptake))
		b.WriteString(" | ")
		b.WriteString(formatFloat(s.Growth.YieldFactor))
		b.WriteString(" | ")
		b.WriteString(formatRange(s.Environment.TemperatureC))
		b.WriteString(" | ")
		b.WriteString(formatRange(s.Environment.Humidity))
		b.WriteString(" |\n")
	}

	return docFile{Name: "strains.md", Title: "Strains", Content: b.String()}
}

func generateStagesDoc(c *game.Catalog) docFile {
	table := c.Stages()

	var b strings.Builder
	b.WriteString("# Life Cycle Stages\n\n")
	b.WriteString("Source: `internal/game/stages.go` (`ReferenceStages`) or the catalog file.\n\n")
	b.WriteString(fmt.Sprintf("Early maturation opens at **%s**, optimal at **%s**.\n\n",
		escape(table.Maturation.EarlyStage), escape(table.Maturation.OptimalStage)))
	b.WriteString("| # | Name | Starts (day) | Days | Size Scale | Bud Scale |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for i, stage := range table.Stages {
		days := "open"
		if !stage.OpenEnded() {
			days = strconv.Itoa(stage.Days)
		}
		bud := ""
		if stage.HasBuds() {
			bud = formatFloat(*stage.BudScale)
		}
		b.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %s | %s |\n",
			i, escape(stage.Name), table.StageStart(i), days, formatFloat(stage.SizeScale), bud))
	}

	return docFile{Name: "stages.md", Title: "Life Cycle Stages", Content: b.String()}
}

// generateTrichomesDoc samples the ripening curve every few days across the
// maturation window.
func generateTrichomesDoc(c *game.Catalog) docFile {
	table := c.Stages()
	early, _ := table.Index(table.Maturation.EarlyStage)
	start := table.StageStart(early)

	var b strings.Builder
	b.WriteString("# Trichome Curve\n\n")
	b.WriteString("Source: `internal/game/trichomes.go` (`StageTable.Trichomes`).\n\n")
	b.WriteString("| Age (days) | Phase | Clear | Milky | Amber | Degraded |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for age := start - 2; age <= start+30; age += 2 {
		t := table.Trichomes(age)
		b.WriteString(fmt.Sprintf("| %d | %s | %d%% | %d%% | %d%% | %d%% |\n",
			age, escape(string(table.Phase(age))), t.Clear, t.Milky, t.Amber, t.Degraded))
	}

	return docFile{Name: "trichomes.md", Title: "Trichome Curve", Content: b.String()}
}

func formatRange(r game.Range) string {
	return formatFloat(r.Min) + "-" + formatFloat(r.Max)
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

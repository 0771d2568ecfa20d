// Package catalog reads and writes the strain and stage catalog as TOML.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/martinsantos/cannaval-sub000/internal/game"
)

// DefaultPath is the conventional location of the catalog file.
const DefaultPath = "cannaval.catalog.toml"

// File is the on-disk layout. Empty sections fall back to the built-in
// strains or the reference stage table.
type File struct {
	Strains    []game.StrainDefinition   `toml:"strains"`
	Stages     []game.LifeCycleStage     `toml:"stages"`
	Maturation game.MaturationMilestones `toml:"maturation"`
}

// Decode parses catalog TOML and builds a validated catalog from it.
func Decode(data []byte) (*game.Catalog, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return f.Catalog()
}

func (f File) Catalog() (*game.Catalog, error) {
	strains := f.Strains
	if len(strains) == 0 {
		strains = game.BuiltInStrains()
	}
	stages := game.StageTable{Stages: f.Stages, Maturation: f.Maturation}
	if len(stages.Stages) == 0 {
		stages = game.ReferenceStages()
	}
	c, err := game.NewCatalog(strains, stages)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog from path. A missing file yields the default catalog
// and no error.
func Load(path string) (*game.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return game.DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path, creating parent directories as needed.
func Save(path string, c *game.Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	stages := c.Stages()
	data, err := toml.Marshal(File{
		Strains:    c.Strains(),
		Stages:     stages.Stages,
		Maturation: stages.Maturation,
	})
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

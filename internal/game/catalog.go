package game

import (
	"fmt"
	"sort"
)

// Catalog is the read-only registry every simulation function is handed:
// strains keyed by id plus the validated stage table. It is never mutated
// after NewCatalog returns, so it can be shared freely.
type Catalog struct {
	strains map[string]StrainDefinition
	order   []string
	stages  StageTable
}

func NewCatalog(strains []StrainDefinition, stages StageTable) (*Catalog, error) {
	if err := stages.Validate(); err != nil {
		return nil, err
	}
	if len(strains) == 0 {
		return nil, fmt.Errorf("catalog: no strains")
	}

	c := &Catalog{
		strains: make(map[string]StrainDefinition, len(strains)),
		order:   make([]string, 0, len(strains)),
		stages: StageTable{
			Stages:     append([]LifeCycleStage(nil), stages.Stages...),
			Maturation: stages.Maturation,
		},
	}
	for _, strain := range strains {
		if err := strain.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.strains[strain.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate strain id %q", strain.ID)
		}
		c.strains[strain.ID] = strain
		c.order = append(c.order, strain.ID)
	}
	sort.Strings(c.order)
	return c, nil
}

// DefaultCatalog wires the built-in strains to the reference stage table.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(BuiltInStrains(), ReferenceStages())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

func (c *Catalog) Strain(id string) (StrainDefinition, bool) {
	s, ok := c.strains[id]
	return s, ok
}

// Strains returns every strain sorted by id.
func (c *Catalog) Strains() []StrainDefinition {
	out := make([]StrainDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.strains[id])
	}
	return out
}

// Stages returns a copy of the stage table.
func (c *Catalog) Stages() StageTable {
	return StageTable{
		Stages:     append([]LifeCycleStage(nil), c.stages.Stages...),
		Maturation: c.stages.Maturation,
	}
}

func (c *Catalog) StageName(index int) string {
	if index < 0 || index >= len(c.stages.Stages) {
		return ""
	}
	return c.stages.Stages[index].Name
}

package game

import (
	"fmt"
	"time"
)

type GardenConfig struct {
	Seed      int64          `mapstructure:"seed"`
	Climate   ClimateProfile `mapstructure:"climate"`
	Supplies  Supplies       `mapstructure:"supplies"`
	MaxPlants int            `mapstructure:"max_plants"`
}

func (c GardenConfig) Validate() error {
	if c.MaxPlants < 1 || c.MaxPlants > 64 {
		return fmt.Errorf("max plants must be between 1 and 64, got %d", c.MaxPlants)
	}
	if c.Supplies.Water < 0 || c.Supplies.Fertilizer < 0 || c.Supplies.Pesticide < 0 {
		return fmt.Errorf("starting supplies must not be negative")
	}
	if c.Climate.TempSwingC < 0 || c.Climate.HumiditySwing < 0 {
		return fmt.Errorf("climate swings must not be negative")
	}
	if c.Climate.BaseHumidity < 0 || c.Climate.BaseHumidity > 100 {
		return fmt.Errorf("base humidity must be within 0..100, got %.1f", c.Climate.BaseHumidity)
	}
	if c.Climate.SeasonDays < 0 {
		return fmt.Errorf("season length must not be negative")
	}
	return nil
}

// Garden is the driver around the simulation core: it owns the day counter,
// the active plants, the curing jars and the player's stock.
type Garden struct {
	Seed        int64          `json:"seed"`
	Day         int            `json:"day"`
	DayProgress float64        `json:"day_progress"`
	Climate     ClimateProfile `json:"climate"`
	MaxPlants   int            `json:"max_plants"`
	NextID      int            `json:"next_id"`
	Plants      []Plant        `json:"plants,omitempty"`
	Jars        []CuringJar    `json:"jars,omitempty"`
	Supplies    Supplies       `json:"supplies"`
	Money       float64        `json:"money"`
	Score       int            `json:"score"`
}

func NewGarden(config GardenConfig) (Garden, error) {
	if err := config.Validate(); err != nil {
		return Garden{}, err
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	return Garden{
		Seed:      config.Seed,
		Day:       1,
		Climate:   config.Climate,
		MaxPlants: config.MaxPlants,
		NextID:    1,
		Supplies:  config.Supplies,
	}, nil
}

// TickReport summarises one advance of the garden.
type TickReport struct {
	Days    int
	Ambient Ambient
	Alerts  map[int]Alert
}

// Ambient is today's climate reading.
func (g *Garden) Ambient() Ambient {
	return AmbientForDay(g.Seed, g.Day, g.Climate)
}

// AdvanceDays moves every plant and jar forward by the same number of days
// under the same ambient reading. Nothing is committed unless every plant
// advances cleanly.
func (g *Garden) AdvanceDays(c *Catalog, days int) (TickReport, error) {
	if days < 0 {
		return TickReport{}, &ActionError{Action: "advance", Err: ErrNegativeDays}
	}
	ambient := g.Ambient()
	report := TickReport{Days: days, Ambient: ambient, Alerts: map[int]Alert{}}
	if days == 0 {
		return report, nil
	}

	plants := make([]Plant, len(g.Plants))
	for i, p := range g.Plants {
		next, err := p.Advance(c, days, ambient)
		if err != nil {
			return TickReport{}, fmt.Errorf("plant %d: %w", p.ID, err)
		}
		plants[i] = next
		if alert, ok := Prioritize(c, next); ok {
			report.Alerts[next.ID] = alert
		}
	}
	jars := make([]CuringJar, len(g.Jars))
	for i, j := range g.Jars {
		next, err := j.Advance(days)
		if err != nil {
			return TickReport{}, fmt.Errorf("jar %d: %w", j.ID, err)
		}
		jars[i] = next
	}

	g.Plants = plants
	g.Jars = jars
	g.Day += days
	return report, nil
}

// Resync recomputes every plant's stage from its age under the catalog's
// stage table. Call it whenever the active table may have changed.
func (g *Garden) Resync(c *Catalog) {
	for i, p := range g.Plants {
		g.Plants[i] = p.WithAge(c.stages, p.AgeDays)
	}
}

// AdvanceFraction accumulates partial days from time boosts and releases
// whole days once they add up.
func (g *Garden) AdvanceFraction(c *Catalog, fraction float64) (TickReport, error) {
	if fraction < 0 {
		return TickReport{}, &ActionError{Action: "advance", Err: ErrNegativeDays}
	}
	progress := g.DayProgress + fraction
	whole := int(progress)
	report, err := g.AdvanceDays(c, whole)
	if err != nil {
		return TickReport{}, err
	}
	g.DayProgress = progress - float64(whole)
	return report, nil
}

func (g *Garden) SowPlant(c *Catalog, strainID string) (Plant, error) {
	if len(g.Plants) >= g.MaxPlants {
		return Plant{}, actionErr("plant", ErrGardenFull, fmt.Sprintf("garden holds at most %d plants", g.MaxPlants))
	}
	p, err := NewPlant(c, g.NextID, strainID)
	if err != nil {
		return Plant{}, err
	}
	g.NextID++
	g.Plants = append(g.Plants, p)
	return p, nil
}

func (g *Garden) plantIndex(id int) (int, error) {
	for i, p := range g.Plants {
		if p.ID == id {
			return i, nil
		}
	}
	return -1, &ActionError{Action: "find", Reason: fmt.Sprintf("plant %d", id), Err: ErrNoSuchPlant}
}

func (g *Garden) jarIndex(id int) (int, error) {
	for i, j := range g.Jars {
		if j.ID == id {
			return i, nil
		}
	}
	return -1, &ActionError{Action: "find", Reason: fmt.Sprintf("jar %d", id), Err: ErrNoSuchJar}
}

// supplyAction applies a supply-consuming action and commits plant and stock
// together.
func (g *Garden) supplyAction(id int, action func(Plant, Supplies) (Plant, Supplies, error)) (Plant, error) {
	idx, err := g.plantIndex(id)
	if err != nil {
		return Plant{}, err
	}
	next, left, err := action(g.Plants[idx], g.Supplies)
	if err != nil {
		return g.Plants[idx], err
	}
	g.Plants[idx] = next
	g.Supplies = left
	return next, nil
}

func (g *Garden) WaterPlant(id int) (Plant, error) {
	return g.supplyAction(id, Water)
}

func (g *Garden) FertilizePlant(id int) (Plant, error) {
	return g.supplyAction(id, Fertilize)
}

func (g *Garden) TreatPlant(id int) (Plant, error) {
	return g.supplyAction(id, TreatPests)
}

func (g *Garden) PrunePlant(id int) (Plant, error) {
	idx, err := g.plantIndex(id)
	if err != nil {
		return Plant{}, err
	}
	next, err := Prune(g.Plants[idx])
	if err != nil {
		return g.Plants[idx], err
	}
	g.Plants[idx] = next
	return next, nil
}

func (g *Garden) TrimPlant(c *Catalog, id int) (Plant, error) {
	idx, err := g.plantIndex(id)
	if err != nil {
		return Plant{}, err
	}
	next, err := Trim(c.stages, g.Plants[idx])
	if err != nil {
		return g.Plants[idx], err
	}
	g.Plants[idx] = next
	return next, nil
}

// InfestPlant is the hook external pest events call.
func (g *Garden) InfestPlant(id int) (Plant, error) {
	idx, err := g.plantIndex(id)
	if err != nil {
		return Plant{}, err
	}
	g.Plants[idx] = Infest(g.Plants[idx])
	return g.Plants[idx], nil
}

// HarvestPlant removes the plant from active simulation and starts a jar.
// Quality and weight are rolled from a stream seeded by garden, day and plant.
func (g *Garden) HarvestPlant(c *Catalog, id int) (CuringJar, error) {
	idx, err := g.plantIndex(id)
	if err != nil {
		return CuringJar{}, err
	}
	roll := dayRNG(g.Seed, g.Day, fmt.Sprintf("harvest:%d", id))
	jar, err := Harvest(c, g.Plants[idx], roll)
	if err != nil {
		return CuringJar{}, err
	}
	jar.ID = g.NextID
	g.NextID++
	g.Plants = append(g.Plants[:idx:idx], g.Plants[idx+1:]...)
	g.Jars = append(g.Jars, jar)
	return jar, nil
}

func (g *Garden) BurpJar(id int) (CuringJar, error) {
	idx, err := g.jarIndex(id)
	if err != nil {
		return CuringJar{}, err
	}
	next, err := Burp(g.Jars[idx])
	if err != nil {
		return g.Jars[idx], err
	}
	g.Jars[idx] = next
	return next, nil
}

// SellJar books the sale and destroys the jar.
func (g *Garden) SellJar(id int) (Sale, error) {
	idx, err := g.jarIndex(id)
	if err != nil {
		return Sale{}, err
	}
	sale, err := Sell(g.Jars[idx])
	if err != nil {
		return Sale{}, err
	}
	g.Money += sale.Revenue
	g.Score += sale.Score
	g.Jars = append(g.Jars[:idx:idx], g.Jars[idx+1:]...)
	return sale, nil
}

// PlantReport is the inspection view of a plant.
type PlantReport struct {
	Plant      Plant
	Strain     StrainDefinition
	StageName  string
	Projection HarvestProjection
	Alert      *Alert
}

func (g *Garden) InspectPlant(c *Catalog, id int) (PlantReport, error) {
	idx, err := g.plantIndex(id)
	if err != nil {
		return PlantReport{}, err
	}
	p := g.Plants[idx]
	strain, ok := c.Strain(p.StrainID)
	if !ok {
		return PlantReport{}, &ActionError{Action: "inspect", Reason: p.StrainID, Err: ErrUnknownStrain}
	}
	projection, err := Project(c, p)
	if err != nil {
		return PlantReport{}, err
	}
	report := PlantReport{
		Plant:      p,
		Strain:     strain,
		StageName:  c.StageName(p.StageIndex),
		Projection: projection,
	}
	if alert, ok := Prioritize(c, p); ok {
		report.Alert = &alert
	}
	return report, nil
}

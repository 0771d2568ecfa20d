package game

import (
	"fmt"
	"strings"
)

type StrainType string

const (
	StrainIndica    StrainType = "indica"
	StrainSativa    StrainType = "sativa"
	StrainHybrid    StrainType = "hybrid"
	StrainRuderalis StrainType = "ruderalis"
)

type Range struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Distance is how far v sits outside the range, zero when inside.
func (r Range) Distance(v float64) float64 {
	switch {
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

type GrowthFactors struct {
	HeightFactor   float64 `toml:"height_factor" json:"height_factor"`
	WidthFactor    float64 `toml:"width_factor" json:"width_factor"`
	WaterUptake    int     `toml:"water_uptake" json:"water_uptake"`
	NutrientUptake int     `toml:"nutrient_uptake" json:"nutrient_uptake"`
	YieldFactor    float64 `toml:"yield_factor" json:"yield_factor"`
}

type Environment struct {
	TemperatureC Range `toml:"temperature_c" json:"temperature_c"`
	Humidity     Range `toml:"humidity" json:"humidity"`
}

type StrainDefinition struct {
	ID          string        `toml:"id" json:"id"`
	Name        string        `toml:"name" json:"name"`
	Type        StrainType    `toml:"type" json:"type"`
	Growth      GrowthFactors `toml:"growth" json:"growth"`
	Environment Environment   `toml:"environment" json:"environment"`
}

func (s StrainDefinition) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("strain %q: empty id", s.Name)
	}
	switch s.Type {
	case StrainIndica, StrainSativa, StrainHybrid, StrainRuderalis:
	default:
		return fmt.Errorf("strain %s: invalid type %q", s.ID, s.Type)
	}
	if s.Growth.WaterUptake <= 0 || s.Growth.NutrientUptake <= 0 {
		return fmt.Errorf("strain %s: uptake rates must be positive", s.ID)
	}
	if s.Growth.YieldFactor <= 0 {
		return fmt.Errorf("strain %s: yield factor must be positive", s.ID)
	}
	if s.Environment.TemperatureC.Min > s.Environment.TemperatureC.Max {
		return fmt.Errorf("strain %s: inverted temperature range", s.ID)
	}
	if s.Environment.Humidity.Min > s.Environment.Humidity.Max {
		return fmt.Errorf("strain %s: inverted humidity range", s.ID)
	}
	return nil
}

func BuiltInStrains() []StrainDefinition {
	return []StrainDefinition{
		{
			ID:   "northern_lights",
			Name: "Northern Lights",
			Type: StrainIndica,
			Growth: GrowthFactors{
				HeightFactor: 0.8, WidthFactor: 1.2,
				WaterUptake: 6, NutrientUptake: 3,
				YieldFactor: 1.1,
			},
			Environment: Environment{
				TemperatureC: Range{Min: 18, Max: 26},
				Humidity:     Range{Min: 40, Max: 60},
			},
		},
		{
			ID:   "haze",
			Name: "Haze",
			Type: StrainSativa,
			Growth: GrowthFactors{
				HeightFactor: 1.4, WidthFactor: 0.8,
				WaterUptake: 8, NutrientUptake: 4,
				YieldFactor: 0.9,
			},
			Environment: Environment{
				TemperatureC: Range{Min: 22, Max: 30},
				Humidity:     Range{Min: 45, Max: 65},
			},
		},
		{
			ID:   "white_widow",
			Name: "White Widow",
			Type: StrainHybrid,
			Growth: GrowthFactors{
				HeightFactor: 1, WidthFactor: 1,
				WaterUptake: 7, NutrientUptake: 3,
				YieldFactor: 1,
			},
			Environment: Environment{
				TemperatureC: Range{Min: 20, Max: 28},
				Humidity:     Range{Min: 40, Max: 60},
			},
		},
		{
			ID:   "lowryder",
			Name: "Lowryder",
			Type: StrainRuderalis,
			Growth: GrowthFactors{
				HeightFactor: 0.6, WidthFactor: 0.7,
				WaterUptake: 5, NutrientUptake: 2,
				YieldFactor: 0.6,
			},
			Environment: Environment{
				TemperatureC: Range{Min: 15, Max: 28},
				Humidity:     Range{Min: 35, Max: 65},
			},
		},
	}
}

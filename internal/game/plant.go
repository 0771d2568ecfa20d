package game

type GrowEnvironment string

const (
	EnvironmentIndoor     GrowEnvironment = "indoor"
	EnvironmentOutdoor    GrowEnvironment = "outdoor"
	EnvironmentGreenhouse GrowEnvironment = "greenhouse"
)

// Plant is a value: every update returns a new Plant and leaves the
// receiver untouched.
type Plant struct {
	ID          int             `json:"id"`
	StrainID    string          `json:"strain_id"`
	AgeDays     int             `json:"age_days"`
	StageIndex  int             `json:"current_stage_index"`
	Health      int             `json:"health"`
	Water       int             `json:"water"`
	Nutrients   int             `json:"nutrients"`
	Pests       bool            `json:"pests"`
	Potted      bool            `json:"is_potted"`
	Environment GrowEnvironment `json:"environment"`

	Vigor     int  `json:"vigor,omitempty"`
	Bushiness int  `json:"bushiness,omitempty"`
	Pruned    bool `json:"is_pruned,omitempty"`
	Trimmed   bool `json:"is_trimmed,omitempty"`
	TrimBonus int  `json:"trim_bonus,omitempty"`
}

// Ambient is one tick's climate reading, shared by every plant in the tick.
type Ambient struct {
	TemperatureC float64 `json:"temperature_c"`
	Humidity     float64 `json:"humidity"`
}

// NewPlant sows a seed: age 0, stage 0, full vitals.
func NewPlant(c *Catalog, id int, strainID string) (Plant, error) {
	if _, ok := c.Strain(strainID); !ok {
		return Plant{}, &ActionError{Action: "plant", Reason: strainID, Err: ErrUnknownStrain}
	}
	return Plant{
		ID:          id,
		StrainID:    strainID,
		Health:      100,
		Water:       100,
		Nutrients:   100,
		Potted:      true,
		Environment: EnvironmentIndoor,
	}, nil
}

func clamp(number, min, max int) int {
	if number < min {
		return min
	}

	if number > max {
		return max
	}

	return number
}

func clampFloat(number, min, max float64) float64 {
	if number < min {
		return min
	}
	if number > max {
		return max
	}
	return number
}

func clampVitals(p *Plant) {
	p.Health = clamp(p.Health, 0, 100)
	p.Water = clamp(p.Water, 0, 100)
	p.Nutrients = clamp(p.Nutrients, 0, 100)
	p.Bushiness = clamp(p.Bushiness, 0, 100)
}

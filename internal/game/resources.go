package game

import "math"

const (
	lowWaterBand     = 30
	lowNutrientBand  = 30
	pestHealthDrag   = 20
	healthDeclineDay = 6
	healthRecoverDay = 2
)

// Advance moves the plant forward by whole days under one ambient reading.
// The per-day step is applied days times, so splitting an interval into
// several ticks gives the same result as one tick over the whole interval.
func (p Plant) Advance(c *Catalog, days int, ambient Ambient) (Plant, error) {
	if days < 0 {
		return p, &ActionError{Action: "advance", Err: ErrNegativeDays}
	}
	strain, ok := c.Strain(p.StrainID)
	if !ok {
		return p, &ActionError{Action: "advance", Reason: p.StrainID, Err: ErrUnknownStrain}
	}

	next := p
	budStage := c.stages.FirstBudStage()
	for i := 0; i < days; i++ {
		next = next.step(strain, c.stages, budStage, ambient)
	}
	return next, nil
}

func (p Plant) step(strain StrainDefinition, stages StageTable, budStage int, ambient Ambient) Plant {
	p.Water -= strain.Growth.WaterUptake
	p.Nutrients -= strain.Growth.NutrientUptake
	clampVitals(&p)

	target := healthTarget(p, strain, ambient)
	switch {
	case p.Health > target:
		p.Health -= min(healthDeclineDay, p.Health-target)
	case p.Health < target:
		p.Health += min(healthRecoverDay, target-p.Health)
	}

	if budStage < 0 || p.StageIndex < budStage {
		p.Bushiness += bushinessPerDay(strain)
	}
	clampVitals(&p)

	p.AgeDays++
	p.StageIndex, _ = stages.StageAt(p.AgeDays)
	return p
}

// healthTarget is the level health drifts toward under the current
// conditions: 100 when every need is met.
func healthTarget(p Plant, strain StrainDefinition, ambient Ambient) int {
	return clamp(100-stressPenalty(p, strain, ambient), 0, 100)
}

func stressPenalty(p Plant, strain StrainDefinition, ambient Ambient) int {
	penalty := 0
	if p.Water < lowWaterBand {
		penalty += (lowWaterBand - p.Water) / 2
		if p.Water == 0 {
			penalty += 15
		}
	}
	if p.Nutrients < lowNutrientBand {
		penalty += (lowNutrientBand - p.Nutrients) / 3
		if p.Nutrients == 0 {
			penalty += 10
		}
	}
	penalty += int(math.Round(strain.Environment.TemperatureC.Distance(ambient.TemperatureC) * 3))
	penalty += int(math.Round(strain.Environment.Humidity.Distance(ambient.Humidity)))
	if p.Pests {
		penalty += pestHealthDrag
	}
	return penalty
}

func bushinessPerDay(strain StrainDefinition) int {
	return max(1, int(math.Round(2*strain.Growth.WidthFactor)))
}

// InEnvelope reports whether the ambient reading sits inside the strain's
// optimal temperature and humidity ranges.
func InEnvelope(strain StrainDefinition, ambient Ambient) bool {
	return strain.Environment.TemperatureC.Contains(ambient.TemperatureC) &&
		strain.Environment.Humidity.Contains(ambient.Humidity)
}

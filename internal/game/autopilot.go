package game

import (
	"errors"
	"fmt"
)

// AutopilotPolicy drives a headless grow from seed to sale. It is used for
// balancing runs and smoke tests.
type AutopilotPolicy struct {
	StrainID  string
	Plants    int
	HarvestAt MaturationPhase
	CureDays  int
	Prune     bool
	Trim      bool
	// PestChance is the per-plant daily chance of an infestation.
	PestChance float64
	MaxDays    int
}

func (p AutopilotPolicy) withDefaults() AutopilotPolicy {
	if p.Plants < 1 {
		p.Plants = 1
	}
	if p.HarvestAt == "" {
		p.HarvestAt = PhaseOptimal
	}
	if p.CureDays < MinSellDays {
		p.CureDays = FullCureDays
	}
	if p.MaxDays < 1 {
		p.MaxDays = 365
	}
	return p
}

type AutopilotResult struct {
	Days      int
	Sown      int
	Harvested int
	Sales     []Sale
	Revenue   float64
	Score     int
	Events    []string
	Finished  bool
}

var phaseRank = map[MaturationPhase]int{
	PhasePreMaturation:  0,
	PhaseEarly:          1,
	PhaseOptimal:        2,
	PhaseOverMaturation: 3,
}

// RunAutopilot sows, tends, harvests, cures and sells on the garden until
// everything it sowed is sold or MaxDays pass.
func RunAutopilot(c *Catalog, g *Garden, policy AutopilotPolicy) (AutopilotResult, error) {
	policy = policy.withDefaults()
	if _, ok := phaseRank[policy.HarvestAt]; !ok {
		return AutopilotResult{}, fmt.Errorf("unknown harvest phase %q", policy.HarvestAt)
	}
	if policy.HarvestAt == PhasePreMaturation {
		return AutopilotResult{}, fmt.Errorf("harvest phase must be inside the maturation window")
	}

	var res AutopilotResult
	logf := func(format string, args ...any) {
		res.Events = append(res.Events, fmt.Sprintf("day %d: ", g.Day)+fmt.Sprintf(format, args...))
	}

	for i := 0; i < policy.Plants; i++ {
		p, err := g.SowPlant(c, policy.StrainID)
		if errors.Is(err, ErrGardenFull) {
			break
		}
		if err != nil {
			return res, err
		}
		res.Sown++
		logf("sowed plant %d", p.ID)
	}

	for res.Days < policy.MaxDays {
		if policy.PestChance > 0 {
			roll := dayRNG(g.Seed, g.Day, "autopilot:pests")
			for _, p := range g.Plants {
				if !p.Pests && roll.Float64() < policy.PestChance {
					if _, err := g.InfestPlant(p.ID); err != nil {
						return res, err
					}
					logf("pests on plant %d", p.ID)
				}
			}
		}

		for _, p := range append([]Plant(nil), g.Plants...) {
			if err := tend(c, g, p, policy, logf); err != nil {
				return res, err
			}
			if phaseRank[c.stages.Phase(p.AgeDays)] >= phaseRank[policy.HarvestAt] {
				jar, err := g.HarvestPlant(c, p.ID)
				if err != nil {
					return res, err
				}
				res.Harvested++
				logf("harvested plant %d into jar %d (%dg, quality %d)", p.ID, jar.ID, jar.Grams, jar.Quality)
			}
		}

		for _, j := range append([]CuringJar(nil), g.Jars...) {
			if j.DaysInJar >= policy.CureDays {
				sale, err := g.SellJar(j.ID)
				if err != nil {
					return res, err
				}
				res.Sales = append(res.Sales, sale)
				res.Revenue += sale.Revenue
				res.Score += sale.Score
				logf("sold jar %d for $%.2f", j.ID, sale.Revenue)
				continue
			}
			if !j.BurpedToday && j.Humidity > humidityEquilibrium {
				if _, err := g.BurpJar(j.ID); err != nil {
					return res, err
				}
			}
		}

		if len(g.Plants) == 0 && len(g.Jars) == 0 {
			res.Finished = true
			break
		}
		if _, err := g.AdvanceDays(c, 1); err != nil {
			return res, err
		}
		res.Days++
	}
	return res, nil
}

// tend answers the plant's needs and applies the one-shot cuts. Running out
// of a supply is logged and the remaining care still happens.
func tend(c *Catalog, g *Garden, p Plant, policy AutopilotPolicy, logf func(string, ...any)) error {
	var steps []func(int) (Plant, error)
	if p.Pests {
		steps = append(steps, g.TreatPlant)
	}
	if p.Water < lowWaterBand {
		steps = append(steps, g.WaterPlant)
	}
	if p.Nutrients < lowNutrientBand {
		steps = append(steps, g.FertilizePlant)
	}
	if policy.Prune && !p.Pruned && p.Bushiness >= pruneMinBushiness {
		steps = append(steps, g.PrunePlant)
	}
	if bud := c.stages.FirstBudStage(); policy.Trim && !p.Trimmed && bud >= 0 && p.StageIndex >= bud {
		steps = append(steps, func(id int) (Plant, error) { return g.TrimPlant(c, id) })
	}

	for _, step := range steps {
		_, err := step(p.ID)
		var actErr *ActionError
		if errors.As(err, &actErr) && errors.Is(err, ErrNoSupplies) {
			logf("plant %d: out of %s", p.ID, actErr.Resource)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

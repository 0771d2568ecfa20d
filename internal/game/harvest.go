package game

import (
	"fmt"
	"math"
)

type HarvestTiming string

const (
	TimingTooEarly      HarvestTiming = "too early"
	TimingSlightlyEarly HarvestTiming = "slightly early"
	TimingOptimal       HarvestTiming = "optimal window"
	TimingOverWindow    HarvestTiming = "over the window"
)

type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r IntRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

type HarvestProjection struct {
	Phase     MaturationPhase `json:"phase"`
	Timing    HarvestTiming   `json:"timing"`
	Quality   IntRange        `json:"quality"`
	YieldG    IntRange        `json:"yield_grams"`
	Trichomes TrichomeProfile `json:"trichomes"`
}

type harvestBand struct {
	timing   HarvestTiming
	quality  IntRange
	yieldPct IntRange
}

var harvestBands = map[MaturationPhase]harvestBand{
	PhasePreMaturation:  {timing: TimingTooEarly, quality: IntRange{Min: 10, Max: 30}, yieldPct: IntRange{Min: 30, Max: 50}},
	PhaseEarly:          {timing: TimingSlightlyEarly, quality: IntRange{Min: 50, Max: 70}, yieldPct: IntRange{Min: 70, Max: 85}},
	PhaseOptimal:        {timing: TimingOptimal, quality: IntRange{Min: 80, Max: 95}, yieldPct: IntRange{Min: 90, Max: 100}},
	PhaseOverMaturation: {timing: TimingOverWindow, quality: IntRange{Min: 55, Max: 75}, yieldPct: IntRange{Min: 85, Max: 95}},
}

// baseYieldGrams is the dry weight of an average strain harvested at its
// best with no pruning.
const baseYieldGrams = 100

// Roller is the random source for realised harvest rolls. *rand.Rand from
// math/rand/v2 satisfies it; tests pass a fixed roller.
type Roller interface {
	IntN(n int) int
}

// Project is the pre-harvest inspection view. It never fails on immature
// plants; they are simply reported as too early.
func Project(c *Catalog, p Plant) (HarvestProjection, error) {
	strain, ok := c.Strain(p.StrainID)
	if !ok {
		return HarvestProjection{}, &ActionError{Action: "inspect", Reason: p.StrainID, Err: ErrUnknownStrain}
	}

	phase := c.stages.Phase(p.AgeDays)
	band := harvestBands[phase]

	quality := band.quality
	if p.Trimmed {
		quality.Min = clamp(quality.Min+p.TrimBonus, 0, 100)
		quality.Max = clamp(quality.Max+p.TrimBonus, 0, 100)
	}

	potential := baseYieldGrams * strain.Growth.YieldFactor * (1 + float64(p.Vigor)/100)
	yield := IntRange{
		Min: int(math.Round(potential * float64(band.yieldPct.Min) / 100)),
		Max: int(math.Round(potential * float64(band.yieldPct.Max) / 100)),
	}

	return HarvestProjection{
		Phase:     phase,
		Timing:    band.timing,
		Quality:   quality,
		YieldG:    yield,
		Trichomes: c.stages.Trichomes(p.AgeDays),
	}, nil
}

// Harvest realises the projection into a curing jar. Plants that have not
// reached early maturation are refused and nothing is created.
func Harvest(c *Catalog, p Plant, roll Roller) (CuringJar, error) {
	projection, err := Project(c, p)
	if err != nil {
		return CuringJar{}, err
	}
	if projection.Phase == PhasePreMaturation {
		w := c.stages.window()
		return CuringJar{}, &ActionError{
			Action:        "harvest",
			Reason:        fmt.Sprintf("ready in %d days", w.earlyStart-p.AgeDays),
			DaysRemaining: w.earlyStart - p.AgeDays,
			Err:           ErrTooEarly,
		}
	}

	quality := rollIn(roll, projection.Quality)
	grams := rollIn(roll, projection.YieldG)
	return NewCuringJar(p.StrainID, grams, quality), nil
}

func rollIn(roll Roller, r IntRange) int {
	if r.Max <= r.Min || roll == nil {
		return r.Min
	}
	return r.Min + roll.IntN(r.Max-r.Min+1)
}

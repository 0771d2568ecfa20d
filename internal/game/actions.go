package game

import "fmt"

type Supply string

const (
	SupplyWater      Supply = "water"
	SupplyFertilizer Supply = "fertilizer"
	SupplyPesticide  Supply = "pesticide"
)

// Supplies is the player's consumable stock. Actions take it by value and
// hand back the reduced stock; the caller decides when to commit both.
type Supplies struct {
	Water      int `json:"water" mapstructure:"water"`
	Fertilizer int `json:"fertilizer" mapstructure:"fertilizer"`
	Pesticide  int `json:"pesticide" mapstructure:"pesticide"`
}

func (s Supplies) Count(item Supply) int {
	switch item {
	case SupplyWater:
		return s.Water
	case SupplyFertilizer:
		return s.Fertilizer
	case SupplyPesticide:
		return s.Pesticide
	default:
		return 0
	}
}

func (s Supplies) take(item Supply) (Supplies, bool) {
	if s.Count(item) <= 0 {
		return s, false
	}
	switch item {
	case SupplyWater:
		s.Water--
	case SupplyFertilizer:
		s.Fertilizer--
	case SupplyPesticide:
		s.Pesticide--
	}
	return s, true
}

const (
	waterPerAction     = 50
	nutrientsPerAction = 40
	pruneMinBushiness  = 40
	pruneBushinessCost = 20
	pruneVigorBonus    = 10
	trimQualityBonus   = 5
)

func consume(action string, supplies Supplies, item Supply) (Supplies, error) {
	left, ok := supplies.take(item)
	if !ok {
		return supplies, &ActionError{
			Action:   action,
			Reason:   fmt.Sprintf("no %s left", item),
			Resource: item,
			Err:      ErrNoSupplies,
		}
	}
	return left, nil
}

// Water tops the plant's water up, spending one unit of water.
func Water(p Plant, supplies Supplies) (Plant, Supplies, error) {
	left, err := consume("water", supplies, SupplyWater)
	if err != nil {
		return p, supplies, err
	}
	p.Water = clamp(p.Water+waterPerAction, 0, 100)
	return p, left, nil
}

// Fertilize tops the plant's nutrients up, spending one unit of fertilizer.
func Fertilize(p Plant, supplies Supplies) (Plant, Supplies, error) {
	left, err := consume("fertilize", supplies, SupplyFertilizer)
	if err != nil {
		return p, supplies, err
	}
	p.Nutrients = clamp(p.Nutrients+nutrientsPerAction, 0, 100)
	return p, left, nil
}

// TreatPests clears an infestation, spending one unit of pesticide.
func TreatPests(p Plant, supplies Supplies) (Plant, Supplies, error) {
	if !p.Pests {
		return p, supplies, actionErr("treat", ErrNoPests, "")
	}
	left, err := consume("treat", supplies, SupplyPesticide)
	if err != nil {
		return p, supplies, err
	}
	p.Pests = false
	return p, left, nil
}

// Infest is the entry point for external pest triggers.
func Infest(p Plant) Plant {
	p.Pests = true
	return p
}

// Prune is a one-shot cut that trades bushiness for vigor.
func Prune(p Plant) (Plant, error) {
	if p.Pruned {
		return p, actionErr("prune", ErrAlreadyPruned, "")
	}
	if p.Bushiness < pruneMinBushiness {
		return p, actionErr("prune", ErrNotBushyEnough,
			fmt.Sprintf("bushiness %d, needs %d", p.Bushiness, pruneMinBushiness))
	}
	p.Pruned = true
	p.Bushiness = clamp(p.Bushiness-pruneBushinessCost, 0, 100)
	p.Vigor += pruneVigorBonus
	return p, nil
}

// Trim is a one-shot manicure available once buds have formed.
func Trim(stages StageTable, p Plant) (Plant, error) {
	if p.Trimmed {
		return p, actionErr("trim", ErrAlreadyTrimmed, "")
	}
	bud := stages.FirstBudStage()
	if bud < 0 || p.StageIndex < bud {
		e := actionErr("trim", ErrTooYoungToTrim, "")
		if bud >= 0 {
			e.DaysRemaining = stages.StageStart(bud) - p.AgeDays
			e.Reason = fmt.Sprintf("buds form in %d days", e.DaysRemaining)
		}
		return p, e
	}
	p.Trimmed = true
	p.TrimBonus = trimQualityBonus
	return p, nil
}

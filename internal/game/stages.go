package game

import (
	"errors"
	"fmt"
	"strings"
)

// Unbounded marks the open-ended terminal stage.
const Unbounded = 0

var ErrInvalidStageTable = errors.New("invalid stage table")

type LifeCycleStage struct {
	Name      string   `toml:"name" json:"name"`
	Days      int      `toml:"days" json:"days"`
	SizeScale float64  `toml:"size_scale" json:"size_scale"`
	BudScale  *float64 `toml:"bud_scale,omitempty" json:"bud_scale,omitempty"`
}

func (s LifeCycleStage) OpenEnded() bool {
	return s.Days == Unbounded
}

func (s LifeCycleStage) HasBuds() bool {
	return s.BudScale != nil
}

// MaturationMilestones names the stages that open the early and optimal
// maturation phases. OptimalWindowDays is only consulted when the optimal
// stage is the open-ended terminal stage.
type MaturationMilestones struct {
	EarlyStage        string `toml:"early_stage" json:"early_stage"`
	OptimalStage      string `toml:"optimal_stage" json:"optimal_stage"`
	OptimalWindowDays int    `toml:"optimal_window_days" json:"optimal_window_days"`
}

type StageTable struct {
	Stages     []LifeCycleStage     `toml:"stages" json:"stages"`
	Maturation MaturationMilestones `toml:"maturation" json:"maturation"`
}

func (t StageTable) Validate() error {
	if len(t.Stages) == 0 {
		return fmt.Errorf("%w: no stages", ErrInvalidStageTable)
	}
	last := len(t.Stages) - 1
	for i, stage := range t.Stages {
		if strings.TrimSpace(stage.Name) == "" {
			return fmt.Errorf("%w: stage %d has no name", ErrInvalidStageTable, i)
		}
		if i == last {
			if !stage.OpenEnded() {
				return fmt.Errorf("%w: terminal stage %q must be open-ended", ErrInvalidStageTable, stage.Name)
			}
			continue
		}
		if stage.Days <= 0 {
			return fmt.Errorf("%w: stage %q has non-positive duration %d", ErrInvalidStageTable, stage.Name, stage.Days)
		}
	}

	early, ok := t.Index(t.Maturation.EarlyStage)
	if !ok {
		return fmt.Errorf("%w: early maturation stage %q not found", ErrInvalidStageTable, t.Maturation.EarlyStage)
	}
	optimal, ok := t.Index(t.Maturation.OptimalStage)
	if !ok {
		return fmt.Errorf("%w: optimal maturation stage %q not found", ErrInvalidStageTable, t.Maturation.OptimalStage)
	}
	if optimal <= early {
		return fmt.Errorf("%w: optimal maturation must come after early maturation", ErrInvalidStageTable)
	}
	if t.Stages[optimal].OpenEnded() && t.Maturation.OptimalWindowDays <= 0 {
		return fmt.Errorf("%w: open-ended optimal stage needs a positive optimal window", ErrInvalidStageTable)
	}
	return nil
}

// Index returns the position of the named stage, matched case-insensitively.
func (t StageTable) Index(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	for i, stage := range t.Stages {
		if strings.EqualFold(stage.Name, name) {
			return i, true
		}
	}
	return 0, false
}

// FirstBudStage is the first stage carrying a bud scale, or -1.
func (t StageTable) FirstBudStage() int {
	for i, stage := range t.Stages {
		if stage.HasBuds() {
			return i
		}
	}
	return -1
}

func budScale(v float64) *float64 {
	return &v
}

// ReferenceStages is the stock 18-stage grow: 124 days to early maturation,
// 131 to optimal maturation, over-maturation from day 138.
func ReferenceStages() StageTable {
	return StageTable{
		Stages: []LifeCycleStage{
			{Name: "Seed", Days: 1, SizeScale: 0.02},
			{Name: "Germination", Days: 3, SizeScale: 0.04},
			{Name: "Sprout", Days: 4, SizeScale: 0.08},
			{Name: "Seedling", Days: 7, SizeScale: 0.15},
			{Name: "Early Vegetative", Days: 10, SizeScale: 0.25},
			{Name: "Vegetative", Days: 14, SizeScale: 0.4},
			{Name: "Late Vegetative", Days: 10, SizeScale: 0.55},
			{Name: "Pre-flower", Days: 7, SizeScale: 0.65},
			{Name: "Flower Onset", Days: 7, SizeScale: 0.72, BudScale: budScale(0.1)},
			{Name: "Early Flowering", Days: 10, SizeScale: 0.8, BudScale: budScale(0.2)},
			{Name: "Bud Formation", Days: 10, SizeScale: 0.86, BudScale: budScale(0.35)},
			{Name: "Mid Flowering", Days: 10, SizeScale: 0.9, BudScale: budScale(0.5)},
			{Name: "Bud Swelling", Days: 8, SizeScale: 0.94, BudScale: budScale(0.65)},
			{Name: "Late Flowering", Days: 8, SizeScale: 0.97, BudScale: budScale(0.78)},
			{Name: "Ripening", Days: 8, SizeScale: 1, BudScale: budScale(0.88)},
			{Name: "Flush", Days: 7, SizeScale: 1, BudScale: budScale(0.93)},
			{Name: "Early Maturation", Days: 7, SizeScale: 1, BudScale: budScale(0.97)},
			{Name: "Optimal Maturation", Days: Unbounded, SizeScale: 1, BudScale: budScale(1)},
		},
		Maturation: MaturationMilestones{
			EarlyStage:        "Early Maturation",
			OptimalStage:      "Optimal Maturation",
			OptimalWindowDays: 7,
		},
	}
}

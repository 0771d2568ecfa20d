package game

import (
	"errors"
	"testing"
)

func TestStageAtReferenceTable(t *testing.T) {
	stages := ReferenceStages()

	cases := []struct {
		age         int
		wantIndex   int
		wantElapsed int
	}{
		{age: 0, wantIndex: 0, wantElapsed: 0},
		{age: 1, wantIndex: 1, wantElapsed: 0},
		{age: 3, wantIndex: 1, wantElapsed: 2},
		{age: 4, wantIndex: 2, wantElapsed: 0},
		{age: 56, wantIndex: 8, wantElapsed: 0},
		{age: 123, wantIndex: 15, wantElapsed: 6},
		{age: 124, wantIndex: 16, wantElapsed: 0},
		{age: 130, wantIndex: 16, wantElapsed: 6},
		{age: 131, wantIndex: 17, wantElapsed: 0},
		{age: 500, wantIndex: 17, wantElapsed: 369},
	}

	for _, tc := range cases {
		index, elapsed := stages.StageAt(tc.age)
		if index != tc.wantIndex || elapsed != tc.wantElapsed {
			t.Fatalf("age %d: expected stage %d elapsed %d, got %d elapsed %d", tc.age, tc.wantIndex, tc.wantElapsed, index, elapsed)
		}
	}
}

func TestStageAtKeepsAgeInsideStage(t *testing.T) {
	stages := ReferenceStages()
	last := len(stages.Stages) - 1

	for age := 0; age <= 400; age++ {
		index, _ := stages.StageAt(age)
		start := stages.StageStart(index)
		if age < start {
			t.Fatalf("age %d lands in stage %d which starts later on day %d", age, index, start)
		}
		if index != last && age >= start+stages.Stages[index].Days {
			t.Fatalf("age %d overruns stage %d (%s)", age, index, stages.Stages[index].Name)
		}
	}
}

func TestReferenceStagesMilestones(t *testing.T) {
	stages := ReferenceStages()
	if err := stages.Validate(); err != nil {
		t.Fatalf("reference stages should validate: %v", err)
	}
	if got := stages.FiniteDays(); got != 131 {
		t.Fatalf("expected 131 bounded days, got %d", got)
	}
	w := stages.window()
	if w.earlyStart != 124 || w.optimalStart != 131 || w.overStart != 138 {
		t.Fatalf("unexpected maturation window %+v", w)
	}
	if got := stages.FirstBudStage(); got != 8 {
		t.Fatalf("expected buds from stage 8, got %d", got)
	}
}

func TestStageTableValidateRejectsBrokenTables(t *testing.T) {
	cases := map[string]func(*StageTable){
		"no stages":            func(s *StageTable) { s.Stages = nil },
		"zero length stage":    func(s *StageTable) { s.Stages[3].Days = 0 },
		"bounded terminal":     func(s *StageTable) { s.Stages[len(s.Stages)-1].Days = 5 },
		"unnamed stage":        func(s *StageTable) { s.Stages[2].Name = " " },
		"missing early stage":  func(s *StageTable) { s.Maturation.EarlyStage = "Blooming" },
		"optimal before early": func(s *StageTable) { s.Maturation.OptimalStage = "Flush" },
		"open optimal window":  func(s *StageTable) { s.Maturation.OptimalWindowDays = 0 },
	}

	for name, mutate := range cases {
		stages := ReferenceStages()
		mutate(&stages)
		err := stages.Validate()
		if !errors.Is(err, ErrInvalidStageTable) {
			t.Fatalf("%s: expected ErrInvalidStageTable, got %v", name, err)
		}
	}
}

func TestWithStageAndWithAgeStayConsistent(t *testing.T) {
	c := DefaultCatalog()
	stages := c.Stages()
	p, err := NewPlant(c, 1, "haze")
	if err != nil {
		t.Fatalf("new plant: %v", err)
	}

	jumped := p.WithStage(stages, 9)
	if jumped.AgeDays != 63 || jumped.StageIndex != 9 {
		t.Fatalf("expected day 63 of stage 9, got day %d stage %d", jumped.AgeDays, jumped.StageIndex)
	}
	if p.AgeDays != 0 {
		t.Fatalf("expected original plant to be untouched")
	}

	aged := p.WithAge(stages, 126)
	if aged.StageIndex != 16 {
		t.Fatalf("expected age 126 in stage 16, got %d", aged.StageIndex)
	}

	clamped := p.WithStage(stages, 99)
	if clamped.StageIndex != len(stages.Stages)-1 {
		t.Fatalf("expected out of range stage to clamp to terminal stage, got %d", clamped.StageIndex)
	}
}

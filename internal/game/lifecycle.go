package game

// StageAt maps an age in days to the stage it falls in and the days already
// spent inside that stage. Ages past every bounded stage land in the terminal
// stage. The table must already be validated.
func (t StageTable) StageAt(age int) (index int, elapsed int) {
	if age < 0 {
		age = 0
	}
	start := 0
	for i, stage := range t.Stages {
		if stage.OpenEnded() || age < start+stage.Days {
			return i, age - start
		}
		start += stage.Days
	}
	// Unreachable for a validated table; keep the last stage absorbing age.
	last := len(t.Stages) - 1
	return last, age - (start - t.Stages[last].Days)
}

// StageStart is the cumulative duration of every stage before index.
func (t StageTable) StageStart(index int) int {
	if index <= 0 {
		return 0
	}
	if index >= len(t.Stages) {
		index = len(t.Stages) - 1
	}
	start := 0
	for _, stage := range t.Stages[:index] {
		start += stage.Days
	}
	return start
}

// FiniteDays is the sum of every bounded stage.
func (t StageTable) FiniteDays() int {
	total := 0
	for _, stage := range t.Stages {
		total += stage.Days
	}
	return total
}

// WithAge overrides the plant's age and recomputes the stage from it.
func (p Plant) WithAge(t StageTable, age int) Plant {
	if age < 0 {
		age = 0
	}
	p.AgeDays = age
	p.StageIndex, _ = t.StageAt(age)
	return p
}

// WithStage jumps the plant to the first day of the given stage.
func (p Plant) WithStage(t StageTable, index int) Plant {
	index = clamp(index, 0, len(t.Stages)-1)
	p.AgeDays = t.StageStart(index)
	p.StageIndex = index
	return p
}

package game

import "math"

type MaturationPhase string

const (
	PhasePreMaturation  MaturationPhase = "pre_maturation"
	PhaseEarly          MaturationPhase = "early_maturation"
	PhaseOptimal        MaturationPhase = "optimal_maturation"
	PhaseOverMaturation MaturationPhase = "over_maturation"
)

// overMaturationRampDays is how long amber keeps climbing past the optimal
// window before the profile stops changing.
const overMaturationRampDays = 10

// TrichomeProfile is the clear/milky/amber split. Degraded holds whatever
// share the three no longer cover once heads start to senesce, so the four
// fields always add up to 100.
type TrichomeProfile struct {
	Clear    int `json:"clear"`
	Milky    int `json:"milky"`
	Amber    int `json:"amber"`
	Degraded int `json:"degraded,omitempty"`
}

func (t TrichomeProfile) Sum() int {
	return t.Clear + t.Milky + t.Amber + t.Degraded
}

type maturationWindow struct {
	earlyStart   int
	optimalStart int
	overStart    int
}

func (w maturationWindow) earlyDays() int   { return w.optimalStart - w.earlyStart }
func (w maturationWindow) optimalDays() int { return w.overStart - w.optimalStart }

// window derives the maturation milestones from stage names and durations.
// The table must be validated.
func (t StageTable) window() maturationWindow {
	early, _ := t.Index(t.Maturation.EarlyStage)
	optimal, _ := t.Index(t.Maturation.OptimalStage)
	w := maturationWindow{
		earlyStart:   t.StageStart(early),
		optimalStart: t.StageStart(optimal),
	}
	if stage := t.Stages[optimal]; stage.OpenEnded() {
		w.overStart = w.optimalStart + t.Maturation.OptimalWindowDays
	} else {
		w.overStart = w.optimalStart + stage.Days
	}
	return w
}

// Phase reports which maturation phase the given age falls into.
func (t StageTable) Phase(age int) MaturationPhase {
	phase, _ := t.phaseAt(age)
	return phase
}

func (t StageTable) phaseAt(age int) (MaturationPhase, int) {
	w := t.window()
	switch {
	case age < w.earlyStart:
		return PhasePreMaturation, age
	case age < w.optimalStart:
		return PhaseEarly, age - w.earlyStart
	case age < w.overStart:
		return PhaseOptimal, age - w.optimalStart
	default:
		return PhaseOverMaturation, age - w.overStart
	}
}

// Trichomes is the deterministic ripening curve for a given age.
func (t StageTable) Trichomes(age int) TrichomeProfile {
	w := t.window()
	phase, elapsed := t.phaseAt(age)

	var out TrichomeProfile
	switch phase {
	case PhasePreMaturation:
		out.Clear = 100
	case PhaseEarly:
		p := float64(elapsed) / float64(w.earlyDays())
		out.Milky = roundPct(p * 70)
		out.Clear = 100 - out.Milky
	case PhaseOptimal:
		p := float64(elapsed) / float64(w.optimalDays())
		out.Amber = roundPct(p * 15)
		out.Milky = min(roundPct(70+p*25), 100-out.Amber)
		out.Clear = max(0, 100-out.Milky-out.Amber)
	case PhaseOverMaturation:
		p := math.Min(1, float64(elapsed)/overMaturationRampDays)
		out.Amber = roundPct(15 + p*60)
		out.Milky = max(0, 95-out.Amber)
	}
	out.Degraded = 100 - out.Clear - out.Milky - out.Amber
	return out
}

func roundPct(v float64) int {
	return clamp(int(math.Round(v)), 0, 100)
}

package game

type AlertType string

const (
	AlertPests        AlertType = "pests"
	AlertThirsty      AlertType = "thirsty"
	AlertHungry       AlertType = "hungry"
	AlertPoorHealth   AlertType = "poor_health"
	AlertReadyHarvest AlertType = "ready_to_harvest"
)

type AlertSeverity int

const (
	SeverityInfo AlertSeverity = iota
	SeverityWarning
	SeverityCritical
)

func (s AlertSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Alert is derived from a plant on demand and never stored.
type Alert struct {
	Type        AlertType     `json:"type"`
	Severity    AlertSeverity `json:"severity"`
	DeadlineDay int           `json:"deadline_day"`
}

const (
	lowHealthBand    = 50
	criticalResource = 10
	criticalHealth   = 25
	pestGraceDays    = 3
)

// Prioritize reduces a plant's conditions to its single most urgent alert.
// Pests outrank thirst, then hunger, then poor health, then harvest
// readiness. ok is false when nothing needs attention.
func Prioritize(c *Catalog, p Plant) (Alert, bool) {
	waterUptake, nutrientUptake := 1, 1
	if strain, found := c.Strain(p.StrainID); found {
		waterUptake = max(1, strain.Growth.WaterUptake)
		nutrientUptake = max(1, strain.Growth.NutrientUptake)
	}

	switch {
	case p.Pests:
		severity := SeverityWarning
		if p.Health < lowHealthBand {
			severity = SeverityCritical
		}
		return Alert{Type: AlertPests, Severity: severity, DeadlineDay: p.AgeDays + pestGraceDays}, true
	case p.Water < lowWaterBand:
		return Alert{
			Type:        AlertThirsty,
			Severity:    resourceSeverity(p.Water),
			DeadlineDay: p.AgeDays + p.Water/waterUptake,
		}, true
	case p.Nutrients < lowNutrientBand:
		return Alert{
			Type:        AlertHungry,
			Severity:    resourceSeverity(p.Nutrients),
			DeadlineDay: p.AgeDays + p.Nutrients/nutrientUptake,
		}, true
	case p.Health < lowHealthBand:
		severity := SeverityWarning
		if p.Health < criticalHealth {
			severity = SeverityCritical
		}
		return Alert{Type: AlertPoorHealth, Severity: severity, DeadlineDay: p.AgeDays + p.Health/healthDeclineDay}, true
	}

	switch c.stages.Phase(p.AgeDays) {
	case PhaseEarly, PhaseOptimal:
		return Alert{
			Type:        AlertReadyHarvest,
			Severity:    SeverityInfo,
			DeadlineDay: c.stages.window().overStart,
		}, true
	}
	return Alert{}, false
}

func resourceSeverity(level int) AlertSeverity {
	if level < criticalResource {
		return SeverityCritical
	}
	return SeverityWarning
}

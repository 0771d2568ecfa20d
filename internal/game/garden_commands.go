package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type CommandResult struct {
	Handled      bool
	Message      string
	DaysAdvanced int
	// Sale is set when the command sold a jar.
	Sale *Sale
}

// MaxWaitDays caps a single wait at one year of game time.
const MaxWaitDays = 365

const commandHelp = "Commands: status, strains, plant <strain>, water <plant>, feed <plant>, treat <plant>, prune <plant>, trim <plant>, inspect <plant>, harvest <plant>, burp <jar>, sell <jar>, wait [days], help."

// ExecuteCommand runs one canonical command string against the garden.
// Failed actions leave the garden untouched and explain why in Message.
func (g *Garden) ExecuteCommand(c *Catalog, raw string) CommandResult {
	command := strings.TrimSpace(strings.ToLower(raw))
	if command == "" {
		return CommandResult{Handled: false}
	}
	fields := strings.Fields(command)

	switch fields[0] {
	case "help", "commands":
		return CommandResult{Handled: true, Message: commandHelp}
	case "status":
		return CommandResult{Handled: true, Message: g.StatusSummary(c)}
	case "strains":
		return CommandResult{Handled: true, Message: strainsSummary(c)}
	case "plant", "sow":
		return g.executeSowCommand(c, fields[1:])
	case "wait", "next":
		return g.executeWaitCommand(c, fields[1:])
	case "water", "feed", "fertilize", "treat", "prune", "trim", "inspect", "harvest":
		return g.executePlantCommand(c, fields[0], fields[1:])
	case "burp", "sell":
		return g.executeJarCommand(fields[0], fields[1:])
	default:
		return CommandResult{Handled: false}
	}
}

func (g *Garden) executeSowCommand(c *Catalog, args []string) CommandResult {
	if len(args) == 0 {
		return CommandResult{Handled: true, Message: "Usage: plant <strain>"}
	}
	strainID := strings.Join(args, "_")
	p, err := g.SowPlant(c, strainID)
	if err != nil {
		return failed(err)
	}
	strain, _ := c.Strain(p.StrainID)
	return CommandResult{Handled: true, Message: fmt.Sprintf("Planted %s as plant %d.", strain.Name, p.ID)}
}

func (g *Garden) executeWaitCommand(c *Catalog, args []string) CommandResult {
	days := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSuffix(args[0], "days"), "d"))
		if err != nil || n < 1 {
			return CommandResult{Handled: true, Message: "Usage: wait [days]"}
		}
		if n > MaxWaitDays {
			return CommandResult{Handled: true, Message: fmt.Sprintf("Can't wait more than %d days at once.", MaxWaitDays)}
		}
		days = n
	}
	report, err := g.AdvanceDays(c, days)
	if err != nil {
		return failed(err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d day(s) pass. Now day %d, %.1f°C, %.0f%% humidity.", days, g.Day, report.Ambient.TemperatureC, report.Ambient.Humidity)
	for _, p := range g.Plants {
		if alert, ok := report.Alerts[p.ID]; ok {
			fmt.Fprintf(&b, " Plant %d: %s (%s).", p.ID, alertLabel(alert.Type), alert.Severity)
		}
	}
	return CommandResult{Handled: true, Message: b.String(), DaysAdvanced: days}
}

func (g *Garden) executePlantCommand(c *Catalog, verb string, args []string) CommandResult {
	id, ok := parseTargetID(args)
	if !ok {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Usage: %s <plant>", verb)}
	}

	var (
		p   Plant
		err error
	)
	switch verb {
	case "water":
		p, err = g.WaterPlant(id)
	case "feed", "fertilize":
		p, err = g.FertilizePlant(id)
	case "treat":
		p, err = g.TreatPlant(id)
	case "prune":
		p, err = g.PrunePlant(id)
	case "trim":
		p, err = g.TrimPlant(c, id)
	case "inspect":
		report, err := g.InspectPlant(c, id)
		if err != nil {
			return failed(err)
		}
		return CommandResult{Handled: true, Message: describePlant(report)}
	case "harvest":
		jar, err := g.HarvestPlant(c, id)
		if err != nil {
			return failed(err)
		}
		return CommandResult{Handled: true, Message: fmt.Sprintf("Harvested plant %d: %dg at quality %d, curing in jar %d.", id, jar.Grams, jar.Quality, jar.ID)}
	}
	if err != nil {
		return failed(err)
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("Plant %d: health %d, water %d, nutrients %d.", p.ID, p.Health, p.Water, p.Nutrients)}
}

func (g *Garden) executeJarCommand(verb string, args []string) CommandResult {
	id, ok := parseTargetID(args)
	if !ok {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Usage: %s <jar>", verb)}
	}
	switch verb {
	case "burp":
		jar, err := g.BurpJar(id)
		if err != nil {
			return failed(err)
		}
		return CommandResult{Handled: true, Message: fmt.Sprintf("Burped jar %d (humidity %d%%).", jar.ID, jar.Humidity)}
	default:
		sale, err := g.SellJar(id)
		if err != nil {
			return failed(err)
		}
		return CommandResult{Handled: true, Message: fmt.Sprintf("Sold %dg at quality %d for $%.2f.", sale.Grams, sale.Quality, sale.Revenue), Sale: &sale}
	}
}

func failed(err error) CommandResult {
	var actErr *ActionError
	if errors.As(err, &actErr) && actErr.Reason != "" {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Can't %s: %v (%s).", actErr.Action, actErr.Err, actErr.Reason)}
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("Can't do that: %v.", err)}
}

// parseTargetID accepts "3", "#3", "p3", "j3", "plant 3" and "jar 3".
func parseTargetID(args []string) (int, bool) {
	for _, arg := range args {
		token := strings.TrimLeft(arg, "#pj")
		if token == "" {
			continue
		}
		if n, err := strconv.Atoi(token); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

func alertLabel(t AlertType) string {
	switch t {
	case AlertPests:
		return "pests"
	case AlertThirsty:
		return "needs water"
	case AlertHungry:
		return "needs nutrients"
	case AlertPoorHealth:
		return "poor health"
	case AlertReadyHarvest:
		return "ready to harvest"
	default:
		return string(t)
	}
}

// StatusSummary is the one-screen overview of the garden.
func (g *Garden) StatusSummary(c *Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d. $%.2f, score %d. Supplies: water %d, fertilizer %d, pesticide %d.",
		g.Day, g.Money, g.Score, g.Supplies.Water, g.Supplies.Fertilizer, g.Supplies.Pesticide)
	if len(g.Plants) == 0 && len(g.Jars) == 0 {
		b.WriteString(" Nothing growing.")
	}
	for _, p := range g.Plants {
		fmt.Fprintf(&b, "\nPlant %d %s: %s (day %d), health %d, water %d, nutrients %d",
			p.ID, p.StrainID, c.StageName(p.StageIndex), p.AgeDays, p.Health, p.Water, p.Nutrients)
		if alert, ok := Prioritize(c, p); ok {
			fmt.Fprintf(&b, " [%s]", alertLabel(alert.Type))
		}
	}
	for _, j := range g.Jars {
		state := fmt.Sprintf("sellable in %d days", j.DaysUntilSellable())
		if j.Sellable() {
			state = "sellable"
		}
		fmt.Fprintf(&b, "\nJar %d %s: %dg, quality %d, humidity %d%%, day %d, cure %.0f%%, %s",
			j.ID, j.StrainID, j.Grams, j.Quality, j.Humidity, j.DaysInJar, j.CureProgress()*100, state)
	}
	return b.String()
}

func strainsSummary(c *Catalog) string {
	lines := make([]string, 0, len(c.order))
	for _, s := range c.Strains() {
		lines = append(lines, fmt.Sprintf("%s (%s, %s): %.0f-%.0f°C, %.0f-%.0f%% RH",
			s.ID, s.Name, s.Type,
			s.Environment.TemperatureC.Min, s.Environment.TemperatureC.Max,
			s.Environment.Humidity.Min, s.Environment.Humidity.Max))
	}
	return strings.Join(lines, "\n")
}

func describePlant(r PlantReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plant %d %s: %s, day %d. Health %d, water %d, nutrients %d.",
		r.Plant.ID, r.Strain.Name, r.StageName, r.Plant.AgeDays, r.Plant.Health, r.Plant.Water, r.Plant.Nutrients)
	t := r.Projection.Trichomes
	fmt.Fprintf(&b, " Trichomes %d%% clear, %d%% milky, %d%% amber.", t.Clear, t.Milky, t.Amber)
	fmt.Fprintf(&b, " Harvest: %s, quality %s, yield %sg.", r.Projection.Timing, r.Projection.Quality, r.Projection.YieldG)
	if r.Alert != nil {
		fmt.Fprintf(&b, " Alert: %s (%s, act by growth day %d).", alertLabel(r.Alert.Type), r.Alert.Severity, r.Alert.DeadlineDay)
	}
	return b.String()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martinsantos/cannaval-sub000/internal/config"
	"github.com/martinsantos/cannaval-sub000/internal/game"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless grow from seed to sale with automatic care",
		Long: `Simulate sows a fresh garden, answers every water, nutrient and pest
alert, harvests at the chosen maturation phase, cures and sells. The stored
garden is not touched; use it to compare strains and harvest timing.`,
		Args: cobra.NoArgs,
		RunE: runSimulate,
	}
	cmd.Flags().String("strain", "northern_lights", "strain to grow")
	cmd.Flags().Int("plants", 1, "number of plants to sow")
	cmd.Flags().String("harvest-at", string(game.PhaseOptimal), "maturation phase to harvest at (early_maturation, optimal_maturation, over_maturation)")
	cmd.Flags().Int("cure-days", game.FullCureDays, "days to cure before selling")
	cmd.Flags().Bool("prune", true, "prune once the plant is bushy enough")
	cmd.Flags().Bool("trim", true, "trim once buds form")
	cmd.Flags().Float64("pest-chance", 0, "per-plant daily chance of an infestation")
	cmd.Flags().Int("max-days", 365, "stop after this many days")
	cmd.Flags().Bool("log", false, "print every event")
	return cmd
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	strain, _ := cmd.Flags().GetString("strain")
	plants, _ := cmd.Flags().GetInt("plants")
	harvestAt, _ := cmd.Flags().GetString("harvest-at")
	cureDays, _ := cmd.Flags().GetInt("cure-days")
	prune, _ := cmd.Flags().GetBool("prune")
	trim, _ := cmd.Flags().GetBool("trim")
	pestChance, _ := cmd.Flags().GetFloat64("pest-chance")
	maxDays, _ := cmd.Flags().GetInt("max-days")
	showLog, _ := cmd.Flags().GetBool("log")

	gardenCfg := cfg.GardenConfig()
	gardenCfg.MaxPlants = max(gardenCfg.MaxPlants, plants)
	g, err := game.NewGarden(gardenCfg)
	if err != nil {
		return err
	}

	res, err := game.RunAutopilot(c, &g, game.AutopilotPolicy{
		StrainID:   strain,
		Plants:     plants,
		HarvestAt:  game.MaturationPhase(harvestAt),
		CureDays:   cureDays,
		Prune:      prune,
		Trim:       trim,
		PestChance: pestChance,
		MaxDays:    maxDays,
	})
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	out := cmd.OutOrStdout()
	if showLog {
		for _, e := range res.Events {
			fmt.Fprintln(out, e)
		}
	}
	fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("Seed %d: %d day(s), sowed %d, harvested %d, sold %d jar(s) for $%.2f, score %d.",
		g.Seed, res.Days, res.Sown, res.Harvested, len(res.Sales), res.Revenue, res.Score)))
	for _, sale := range res.Sales {
		fmt.Fprintf(out, "  %s: %dg at quality %d, $%.2f\n", sale.StrainID, sale.Grams, sale.Quality, sale.Revenue)
	}
	if !res.Finished {
		fmt.Fprintf(out, "Stopped after %d days with %d plant(s) and %d jar(s) left.\n", res.Days, len(g.Plants), len(g.Jars))
	}
	fmt.Fprintf(out, "Supplies left: water %d, fertilizer %d, pesticide %d.\n", g.Supplies.Water, g.Supplies.Fertilizer, g.Supplies.Pesticide)
	return nil
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/martinsantos/cannaval-sub000/internal/config"
	"github.com/martinsantos/cannaval-sub000/internal/game"
	"github.com/martinsantos/cannaval-sub000/internal/store"
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a fresh garden, replacing any stored one with the same name",
		Args:  cobra.NoArgs,
		RunE:  runNew,
	}
	return cmd
}

func runNew(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	g, err := game.NewGarden(cfg.GardenConfig())
	if err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(cmd.Context(), cfg.Garden, g); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "New garden %q (seed %d, %d slots).\n", cfg.Garden, g.Seed, g.MaxPlants)
	return nil
}

func newPlantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plant <strain>",
		Short: "Sow a seed of the given strain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanonical(cmd, "plant "+strings.Join(args, " "))
		},
	}
}

func newAdvanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance [days]",
		Short: "Let time pass in the garden",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAdvance,
	}
	cmd.Flags().Float64("fraction", 0, "advance by a fraction of a day instead (time boosts)")
	return cmd
}

func runAdvance(cmd *cobra.Command, args []string) error {
	fraction, _ := cmd.Flags().GetFloat64("fraction")
	if fraction == 0 {
		days := "1"
		if len(args) == 1 {
			days = args[0]
		}
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return fmt.Errorf("advance: days must be a non-negative whole number, got %q", days)
		}
		if n == 0 {
			return nil
		}
		return runCanonical(cmd, "wait "+strconv.Itoa(n))
	}

	if fraction < 0 || fraction > game.MaxWaitDays {
		return fmt.Errorf("advance: fraction must be within 0..%d, got %g", game.MaxWaitDays, fraction)
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	before := s.garden.Day
	if _, err := s.garden.AdvanceFraction(s.catalog, fraction); err != nil {
		return err
	}
	if err := s.save(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Advanced %d day(s); %.2f of a day carried.\n", s.garden.Day-before, s.garden.DayProgress)
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show plants, jars and supplies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCanonical(cmd, "status")
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <plant>",
		Short: "Show trichomes and harvest projection for a plant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanonical(cmd, "inspect "+args[0])
		},
	}
}

func newStrainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strains",
		Short: "List the strains in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			for _, s := range c.Strains() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-16s %-7s water %d/day, nutrients %d/day\n",
					s.ID, s.Name, s.Type, s.Growth.WaterUptake, s.Growth.NutrientUptake)
			}
			return nil
		},
	}
}

func newSalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "List the sales booked by this garden",
		Args:  cobra.NoArgs,
		RunE:  runSales,
	}
}

func runSales(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.Sales(cmd.Context(), cfg.Garden)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No sales yet.")
		return nil
	}
	var total float64
	for _, r := range records {
		fmt.Fprintf(out, "day %3d  %-16s %4dg  quality %3d  $%.2f\n", r.Day, r.Sale.StrainID, r.Sale.Grams, r.Sale.Quality, r.Sale.Revenue)
		total += r.Sale.Revenue
	}
	fmt.Fprintf(out, "Total: $%.2f\n", total)
	return nil
}

func newGardensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gardens",
		Short: "List stored gardens",
		Args:  cobra.NoArgs,
		RunE:  runGardens,
	}
	cmd.Flags().String("delete", "", "delete the named garden")
	return cmd
}

func runGardens(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := store.Open(cmd.Context(), cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if name, _ := cmd.Flags().GetString("delete"); name != "" {
		if err := st.Delete(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted garden %q.\n", name)
		return nil
	}

	names, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

// runCanonical runs one garden command against the stored garden and saves.
func runCanonical(cmd *cobra.Command, command string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.run(cmd.Context(), command)
	if err != nil {
		return err
	}
	if !res.Handled {
		return fmt.Errorf("unknown command %q", command)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderMessage(res.Message))
	return nil
}

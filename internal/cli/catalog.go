package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martinsantos/cannaval-sub000/internal/catalog"
	"github.com/martinsantos/cannaval-sub000/internal/config"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the strain and stage catalog",
	}

	export := &cobra.Command{
		Use:   "export [path]",
		Short: "Write the active catalog to a TOML file for editing",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCatalogExport,
	}
	check := &cobra.Command{
		Use:   "check <path>",
		Short: "Validate a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogCheck,
	}
	cmd.AddCommand(export, check)
	return cmd
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	path := catalog.DefaultPath
	if len(args) == 1 {
		path = args[0]
	}
	if err := catalog.Save(path, c); err != nil {
		return fmt.Errorf("catalog export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d strains and %d stages to %s.\n", len(c.Strains()), len(c.Stages().Stages), path)
	return nil
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err != nil {
		return fmt.Errorf("catalog check: %w", err)
	}
	c, err := catalog.Load(args[0])
	if err != nil {
		return fmt.Errorf("catalog check: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d strains, %d stages, ok.\n", args[0], len(c.Strains()), len(c.Stages().Stages))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo is stamped into the binary at release time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("cannaval %s (%s) %s", b.Version, b.Commit, b.Date)
}

// NewRootCmd builds the full command tree. Each call returns a fresh tree so
// flags never leak between runs.
func NewRootCmd(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "cannaval",
		Short:         "Plant lifecycle and harvest-quality simulator",
		Long:          "Cannaval grows plants day by day, cures what you harvest and keeps the garden in a local SQLite file.",
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd)
		},
	}
	root.SetVersionTemplate(info.String() + "\n")

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default .cannaval.yaml)")
	flags.String("db", "", "garden database path")
	flags.String("catalog", "", "strain catalog TOML file")
	flags.StringP("garden", "g", "", "garden name")
	flags.Int64("seed", 0, "seed for a new garden (0 picks one)")
	flags.BoolP("verbose", "v", false, "verbose output")

	root.AddCommand(
		newNewCmd(),
		newPlantCmd(),
		newAdvanceCmd(),
		newStatusCmd(),
		newInspectCmd(),
		newDoCmd(),
		newPlayCmd(),
		newStrainsCmd(),
		newSimulateCmd(),
		newSalesCmd(),
		newGardensCmd(),
		newCatalogCmd(),
	)
	return root
}

// Execute runs the command tree until ctx is cancelled.
func Execute(ctx context.Context, info BuildInfo) error {
	return NewRootCmd(info).ExecuteContext(ctx)
}

var flagKeys = map[string]string{
	"db":      "db_path",
	"catalog": "catalog_path",
	"garden":  "garden",
	"seed":    "seed",
	"verbose": "verbose",
}

func initConfig(cmd *cobra.Command) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	} else {
		viper.SetConfigName(".cannaval")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		// It's fine if no config file is found; we use defaults.
		_ = viper.ReadInConfig()
	}

	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/martinsantos/cannaval-sub000/internal/catalog"
	"github.com/martinsantos/cannaval-sub000/internal/game"
	"github.com/martinsantos/cannaval-sub000/internal/parser"
)

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <text...>",
		Short: "Run one free-text instruction, e.g. \"water plant 2\" or \"wait a week\"",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDo,
	}
}

func runDo(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.runLine(cmd, parser.New(), strings.Join(args, " "), "")
	return err
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Tend the garden interactively",
		Long: `Reads one instruction per line from stdin and applies it to the garden.
Type quit to leave. The garden is saved after every command.

With watch_catalog enabled, edits to the catalog file are picked up live.`,
		Args: cobra.NoArgs,
		RunE: runPlay,
	}
	return cmd
}

func runPlay(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	var updates <-chan catalog.Update
	if s.cfg.WatchCatalog && s.cfg.CatalogPath != "" {
		w, err := catalog.NewWatcher(s.cfg.CatalogPath)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		updates = w.Updates
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("Garden %q, day %d.", s.cfg.Garden, s.garden.Day)), "Type help for commands, quit to leave.")

	p := parser.New()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	last := ""
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		drainCatalogUpdates(s, updates, out)

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Bye.")
			return nil
		}
		if last, err = s.runLine(cmd, p, line, last); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// drainCatalogUpdates swaps in any catalog reloaded since the last prompt. A
// broken edit keeps the current catalog.
func drainCatalogUpdates(s *session, updates <-chan catalog.Update, out io.Writer) {
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			if u.Err != nil {
				log.Printf("catalog reload: %v", u.Err)
				continue
			}
			if missing := missingStrains(s, u.Catalog); len(missing) > 0 {
				log.Printf("catalog reload: keeping previous catalog, growing strains removed: %s", strings.Join(missing, ", "))
				continue
			}
			s.garden.Resync(u.Catalog)
			s.catalog = u.Catalog
			fmt.Fprintln(out, "Catalog reloaded.")
		default:
			return
		}
	}
}

func missingStrains(s *session, c *game.Catalog) []string {
	var missing []string
	for _, p := range s.garden.Plants {
		if _, ok := c.Strain(p.StrainID); !ok {
			missing = append(missing, p.StrainID)
		}
	}
	return missing
}

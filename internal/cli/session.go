package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/martinsantos/cannaval-sub000/internal/catalog"
	"github.com/martinsantos/cannaval-sub000/internal/config"
	"github.com/martinsantos/cannaval-sub000/internal/game"
	"github.com/martinsantos/cannaval-sub000/internal/parser"
	"github.com/martinsantos/cannaval-sub000/internal/store"
)

// session is one command's view of a persisted garden.
type session struct {
	cfg     config.Config
	catalog *game.Catalog
	store   *store.Store
	garden  game.Garden
	created bool
}

func loadCatalog(cfg config.Config) (*game.Catalog, error) {
	if cfg.CatalogPath == "" {
		return game.DefaultCatalog(), nil
	}
	c, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return c, nil
}

// openSession loads config and catalog, opens the store and loads the named
// garden, creating a fresh one when none is stored yet.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, catalog: c, store: st}
	g, err := st.Load(ctx, cfg.Garden)
	switch {
	case err == nil:
		g.Resync(c)
		s.garden = g
	case errors.Is(err, store.ErrNotFound):
		g, err := game.NewGarden(cfg.GardenConfig())
		if err != nil {
			st.Close()
			return nil, err
		}
		s.garden = g
		s.created = true
		if cfg.Verbose {
			log.Printf("starting garden %q with seed %d", cfg.Garden, g.Seed)
		}
	default:
		st.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) save(ctx context.Context) error {
	return s.store.Save(ctx, s.cfg.Garden, s.garden)
}

func (s *session) Close() error {
	return s.store.Close()
}

// parseContext lists what the garden holds so the parser can resolve targets.
func (s *session) parseContext(last string) parser.ParseContext {
	ctx := parser.ParseContext{LastTarget: last}
	for _, strain := range s.catalog.Strains() {
		ctx.Strains = append(ctx.Strains, strain.ID)
	}
	for _, p := range s.garden.Plants {
		ctx.Plants = append(ctx.Plants, p.ID)
	}
	for _, j := range s.garden.Jars {
		ctx.Jars = append(ctx.Jars, j.ID)
	}
	return ctx
}

// run executes one canonical command, records any sale and persists the
// garden.
func (s *session) run(ctx context.Context, command string) (game.CommandResult, error) {
	day := s.garden.Day
	res := s.garden.ExecuteCommand(s.catalog, command)
	if !res.Handled {
		return res, nil
	}
	if res.Sale != nil {
		if err := s.store.RecordSale(ctx, s.cfg.Garden, day, *res.Sale); err != nil {
			return res, err
		}
	}
	return res, s.save(ctx)
}

// runLine parses free text and runs it. When the parser needs clarification
// the options are printed instead.
func (s *session) runLine(cmd *cobra.Command, p *parser.Parser, line, last string) (string, error) {
	intent := p.Parse(s.parseContext(last), line)
	out := cmd.OutOrStdout()
	if intent.Clarify != nil {
		fmt.Fprintln(out, intent.Clarify.Prompt)
		for i, opt := range intent.Clarify.Options {
			fmt.Fprintln(out, styleHint.Render(fmt.Sprintf("  %d) %s", i+1, parser.IntentToCommandString(opt))))
		}
		return last, nil
	}
	command := parser.IntentToCommandString(intent)
	res, err := s.run(cmd.Context(), command)
	if err != nil {
		return last, err
	}
	if !res.Handled {
		fmt.Fprintf(out, "Not sure what %q means. Try help.\n", line)
		return last, nil
	}
	fmt.Fprintln(out, renderMessage(res.Message))
	// Only plant and jar ids can be referred back to with "it".
	if len(intent.Args) > 0 {
		if _, err := strconv.Atoi(intent.Args[0]); err == nil {
			last = intent.Args[0]
		}
	}
	return last, nil
}

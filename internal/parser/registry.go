package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	for _, phrase := range append([]string{c.Canonical}, c.Aliases...) {
		n := normaliseInput(phrase)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	cmd, ok := r.commands[normaliseInput(canonical)]
	return cmd, ok
}

// Verbs lists every canonical verb, sorted.
func (r *Registry) Verbs() []string {
	out := make([]string, 0, len(r.commands))
	for verb := range r.commands {
		out = append(out, verb)
	}
	sort.Strings(out)
	return out
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if cand, ok := scorePhrase(tokens, phrase); ok {
			cands = append(cands, cand)
		}
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	best := cands[0]
	alts := make([]commandCandidate, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 4 {
			break
		}
	}
	return best, alts
}

// scorePhrase rates how well the leading tokens spell one registered phrase:
// exact beats alias beats prefix beats an edit-distance match.
func scorePhrase(tokens []string, phrase commandPhrase) (commandCandidate, bool) {
	n := len(phrase.tokens)
	if n == 0 {
		return commandCandidate{}, false
	}
	cand := commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias}

	if len(tokens) >= n && strings.Join(tokens[:n], " ") == phrase.alias {
		cand.Consumed = n
		cand.Score, cand.Source = 1.0, "exact"
		if phrase.alias != phrase.canonical {
			// Longer aliases win over the bare verb they start with.
			cand.Score, cand.Source = 0.97+0.001*float64(n-1), "alias"
		}
		return cand, true
	}

	if n == 1 && len(tokens[0]) >= 3 && strings.HasPrefix(phrase.alias, tokens[0]) {
		cand.Consumed = 1
		cand.Score, cand.Source = 0.9, "prefix"
		return cand, true
	}

	if len(tokens) < n {
		return commandCandidate{}, false
	}
	compare := strings.Join(tokens[:n], " ")
	if len(compare) < 3 {
		return commandCandidate{}, false
	}
	dist := levenshtein.ComputeDistance(compare, phrase.alias)
	if dist > levenshteinLimit(len(phrase.alias)) {
		return commandCandidate{}, false
	}
	cand.Consumed = n
	cand.Score = 0.72 - (0.08 * float64(dist))
	if phrase.alias != phrase.canonical {
		cand.Score += 0.03
	}
	cand.Source = "lev"
	return cand, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// DefaultRegistry holds the garden verbs. Canonical names are the ones the
// garden's command runner understands.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "what can i do"}},
		{Canonical: "status", Aliases: []string{"stat", "overview", "garden", "summary", "how are my plants"}},
		{Canonical: "strains", Aliases: []string{"seeds", "catalog", "list strains", "seed list"}},
		{Canonical: "plant", Aliases: []string{"sow", "grow", "germinate", "plant seed"}, MinArgs: 1, MaxArgs: 1, Target: TargetStrain},
		{Canonical: "water", Aliases: []string{"irrigate", "hydrate", "give water"}, MinArgs: 1, MaxArgs: 1, Target: TargetPlant},
		{Canonical: "feed", Aliases: []string{"fertilize", "fertilise", "nutrients", "add nutrients"}, MinArgs: 1, MaxArgs: 1, Target: TargetPlant},
		{Canonical: "treat", Aliases: []string{"spray", "treat pests", "kill pests", "pesticide"}, MinArgs: 1, MaxArgs: 1, Target: TargetPlant},
		{Canonical: "prune", Aliases: []string{"top", "topping", "lollipop"}, MinArgs: 1, MaxArgs: 1, Target: TargetPlant},
		{Canonical: "trim", Aliases: []string{"manicure", "trim leaves"}, MinArgs: 1, MaxArgs: 1, Target: TargetPlant},
		{Canonical: "inspect", Aliases: []string{"check", "examine", "look at", "look"}, MinArgs: 1, MaxArgs: 1, Target: TargetPlant},
		{Canonical: "harvest", Aliases: []string{"chop", "cut down", "reap"}, MinArgs: 1, MaxArgs: 1, Target: TargetPlant},
		{Canonical: "burp", Aliases: []string{"vent", "open jar", "air out"}, MinArgs: 1, MaxArgs: 1, Target: TargetJar},
		{Canonical: "sell", Aliases: []string{"market", "sell jar"}, MinArgs: 1, MaxArgs: 1, Target: TargetJar},
		{Canonical: "wait", Aliases: []string{"next", "skip", "pass", "sleep", "fast forward"}, TakesDays: true},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}

package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command, or help for the list."}
		return intent
	}

	tokens := dropLeadingFiller(tokenise(intent.Normalised))
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	// A fuzzy verb match yields to a clear free-text reading.
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 || cmdMatch.Source == "lev" {
		if inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
	}
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try " + strings.Join(p.registry.Verbs(), ", ") + ".",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens[min(cmdMatch.Consumed, len(tokens)):]
	def, _ := p.registry.command(intent.Verb)
	if def.TakesDays {
		intent.Quantity, argsTokens = extractDays(argsTokens)
	}

	resolvedArgs, clarify, argScore := resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if len(intent.Args) < def.MinArgs {
		options := buildTargetOptions(ctx, def, 5)
		if len(options) > 0 {
			intent.Clarify = &ClarifyQuestion{
				Prompt:  fmt.Sprintf("Which %s should I %s?", targetNoun(def.Target), def.Canonical),
				Options: options,
			}
			intent.Confidence = 0.46
			return intent
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs a %s.", def.Canonical, targetNoun(def.Target))}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "status", "strains", "inspect":
		return Query
	default:
		return Command
	}
}

func targetNoun(kind TargetKind) string {
	switch kind {
	case TargetStrain:
		return "strain"
	case TargetJar:
		return "jar"
	default:
		return "plant"
	}
}

func dropLeadingFiller(tokens []string) []string {
	for len(tokens) > 1 {
		switch tokens[0] {
		case "please", "lets", "let", "now", "go", "ok", "okay", "i", "want", "to":
			tokens = tokens[1:]
			continue
		}
		break
	}
	return tokens
}

// extractDays pulls the first span of days out of the tokens and returns the
// rest untouched.
func extractDays(tokens []string) (*Quantity, []string) {
	for i := range tokens {
		q, consumed := parseDays(tokens[i:])
		if q == nil {
			continue
		}
		rest := append(append([]string(nil), tokens[:i]...), tokens[i+consumed:]...)
		return q, rest
	}
	return nil, tokens
}

func resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	switch def.Target {
	case TargetStrain:
		return resolveStrain(ctx, def, args)
	case TargetPlant:
		return resolveTarget(def, args, ctx.Plants, ctx.LastTarget)
	case TargetJar:
		return resolveTarget(def, args, ctx.Jars, ctx.LastTarget)
	default:
		return nil, nil, 0.9
	}
}

// resolveTarget finds the plant or jar id an action points at. With no id in
// the input a lone candidate is assumed.
func resolveTarget(def CommandDef, args []string, ids []int, last string) ([]string, *ClarifyQuestion, float64) {
	for _, token := range args {
		if isPronoun(token) {
			if _, ok := targetID(last); !ok {
				if len(ids) == 1 {
					return []string{strconv.Itoa(ids[0])}, nil, 0.8
				}
				return nil, &ClarifyQuestion{Prompt: fmt.Sprintf("Which %s do you mean?", targetNoun(def.Target))}, 0.4
			}
			return []string{last}, nil, 0.82
		}
		if id, ok := targetID(token); ok {
			score := 0.9
			if len(ids) > 0 && !containsID(ids, id) {
				score = 0.7
			}
			return []string{strconv.Itoa(id)}, nil, score
		}
	}
	if len(ids) == 1 {
		return []string{strconv.Itoa(ids[0])}, nil, 0.8
	}
	return nil, nil, 0.9
}

func resolveStrain(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	words := make([]string, 0, len(args))
	for _, token := range args {
		if !isFiller(token) && token != "seed" && token != "seeds" && token != "some" {
			words = append(words, token)
		}
	}
	if len(words) == 0 {
		return nil, nil, 0.9
	}
	name := strings.Join(words, " ")
	if len(ctx.Strains) == 0 {
		return []string{name}, nil, 0.7
	}

	matches, confidence, tie := bestMatches(name, mergeUnique(ctx.Strains, nil))
	if tie && len(matches) >= 2 {
		options := make([]Intent, 0, 2)
		for idx := 0; idx < 2; idx++ {
			options = append(options, Intent{
				Kind:       commandKind(def.Canonical),
				Verb:       def.Canonical,
				Args:       []string{matches[idx]},
				Confidence: confidence - float64(idx)*0.01,
			})
		}
		return nil, &ClarifyQuestion{Prompt: "Which strain did you mean?", Options: options}, 0.52
	}
	if len(matches) == 1 {
		return matches, nil, confidence
	}
	return []string{name}, nil, 0.6
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func bestMatches(token string, all []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		case containsPhrase(cand, token):
			score = 0.86
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildTargetOptions(ctx ParseContext, def CommandDef, maxOptions int) []Intent {
	var pool []string
	switch def.Target {
	case TargetStrain:
		pool = mergeUnique(ctx.Strains, nil)
	case TargetPlant:
		pool = idStrings(ctx.Plants)
	case TargetJar:
		pool = idStrings(ctx.Jars)
	}
	options := make([]Intent, 0, maxOptions)
	for _, target := range pool {
		options = append(options, Intent{
			Kind:       commandKind(def.Canonical),
			Verb:       def.Canonical,
			Args:       []string{target},
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func idStrings(ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.Itoa(id))
	}
	return out
}

// inferFreeTextIntent catches plain descriptions of a problem ("my plant
// looks thirsty") that do not start with a verb.
func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	tokens := tokenise(n)
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}
	plantIntent := func(verb string, confidence float64) *Intent {
		def := CommandDef{Canonical: verb, Target: TargetPlant}
		args, clarify, _ := resolveTarget(def, tokens, ctx.Plants, ctx.LastTarget)
		if clarify == nil && len(args) == 0 {
			if options := buildTargetOptions(ctx, def, 5); len(options) > 0 {
				clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("Which plant should I %s?", verb), Options: options}
			}
		}
		intent := makeIntent(Command, verb, args, confidence)
		if clarify != nil {
			intent.Clarify = clarify
			intent.Confidence = 0.46
		}
		return intent
	}

	if containsAnyPhrase(n, "how is my garden", "hows my garden", "how are things", "show garden", "whats growing", "what is growing") {
		return makeIntent(Query, "status", nil, 0.88)
	}
	if containsAnyPhrase(n, "what strains", "which strains", "what seeds", "which seeds") {
		return makeIntent(Query, "strains", nil, 0.86)
	}
	if containsAnyPhrase(n, "ready to harvest", "time to harvest", "harvest time") {
		return plantIntent("harvest", 0.8)
	}
	if containsAnyWord(n, "bugs", "pests", "mites", "aphids", "gnats", "infested") {
		return plantIntent("treat", 0.8)
	}
	if containsAnyWord(n, "thirsty", "dry", "droopy", "wilting") {
		return plantIntent("water", 0.8)
	}
	if containsAnyWord(n, "hungry", "yellow", "yellowing", "starving") {
		return plantIntent("feed", 0.78)
	}
	if containsAnyPhrase(n, "skip ahead", "let it grow", "let them grow") || containsWord(n, "wait") {
		q, _ := extractDays(tokens)
		intent := makeIntent(Command, "wait", nil, 0.8)
		intent.Quantity = q
		return intent
	}
	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func containsAnyWord(value string, words ...string) bool {
	for _, w := range words {
		if containsWord(value, w) {
			return true
		}
	}
	return false
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	add := func(list []string) {
		for _, v := range list {
			n := normaliseInput(v)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	add(a)
	add(b)
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent in the form the garden's command
// runner accepts, e.g. "water 3" or "wait 7".
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		n := normaliseInput(arg)
		if n != "" {
			args = append(args, n)
		}
	}
	if intent.Quantity != nil && intent.Quantity.Raw != "" {
		args = append(args, normaliseInput(intent.Quantity.Raw))
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}

package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// Quantity is a resolved span of time. N is always in days.
type Quantity struct {
	Raw  string
	N    int
	Unit string
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext is what the garden currently holds, used to resolve targets.
// Plants and Jars are the live ids; Strains are catalog ids.
type ParseContext struct {
	Strains    []string
	Plants     []int
	Jars       []int
	LastTarget string
}

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetStrain
	TargetPlant
	TargetJar
)

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	Target     TargetKind
	TakesDays  bool
	HandlerKey string
}

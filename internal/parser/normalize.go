package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// parseDays reads a span like "3", "3d", "2 weeks", "a week" or "tomorrow".
// It returns the number of tokens it consumed.
func parseDays(tokens []string) (*Quantity, int) {
	if len(tokens) == 0 {
		return nil, 0
	}
	token := tokens[0]
	switch token {
	case "tomorrow", "overnight":
		return &Quantity{Raw: "1", N: 1, Unit: "days"}, 1
	case "day":
		return &Quantity{Raw: "1", N: 1, Unit: "days"}, 1
	case "week":
		return &Quantity{Raw: "7", N: 7, Unit: "days"}, 1
	case "fortnight":
		return &Quantity{Raw: "14", N: 14, Unit: "days"}, 1
	}

	n, unit, ok := splitNumberUnit(token)
	if !ok {
		return nil, 0
	}
	consumed := 1
	if unit == "" && len(tokens) > 1 {
		if u := dayUnit(tokens[1]); u != "" {
			unit = u
			consumed = 2
		}
	}
	if unit == "" {
		if token == "a" || token == "an" {
			return nil, 0
		}
		unit = "d"
	}
	if unit == "w" {
		n *= 7
	}
	if n < 1 {
		return nil, 0
	}
	raw := strconv.Itoa(n)
	return &Quantity{Raw: raw, N: n, Unit: "days"}, consumed
}

func splitNumberUnit(token string) (int, string, bool) {
	if n, ok := numberWords[token]; ok {
		return n, "", true
	}
	digits := strings.TrimRightFunc(token, func(r rune) bool { return r < '0' || r > '9' })
	if digits == "" {
		return 0, "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "", false
	}
	rest := strings.TrimPrefix(token, digits)
	if rest == "" {
		return n, "", true
	}
	unit := dayUnit(rest)
	if unit == "" {
		return 0, "", false
	}
	return n, unit, true
}

func dayUnit(token string) string {
	switch token {
	case "d", "day", "days":
		return "d"
	case "w", "wk", "wks", "week", "weeks":
		return "w"
	default:
		return ""
	}
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "them", "this", "her", "she":
		return true
	default:
		return false
	}
}

func isFiller(token string) bool {
	switch token {
	case "the", "my", "a", "an", "for", "on", "to", "please", "number", "no", "plant", "jar", "at", "of", "some":
		return true
	default:
		return false
	}
}

// targetID reads "3", "p3", "j3" or "plant3" as an id.
func targetID(token string) (int, bool) {
	for _, prefix := range []string{"plant", "jar", "p", "j"} {
		if rest, ok := strings.CutPrefix(token, prefix); ok && rest != "" {
			token = rest
			break
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

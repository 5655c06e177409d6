package cli

import (
	"strconv"
	"strings"
)

// Intent is a parsed player command. Intentionally dumb: no NLP, just
// aliases and a numeric shortcut for picking choices.
type Intent struct {
	Verb string
	Arg  string
	N    int // choice number for "choose"; -1 otherwise
}

var verbAliases = map[string]string{
	// Map / travel
	"m":      "map",
	"go":     "visit",
	"enter":  "visit",
	"walk":   "visit",
	"travel": "visit",
	"v":      "visit",

	// Clock
	"a":    "age",
	"year": "age",
	"w":    "wait",
	"z":    "wait",

	// Scrapbook
	"p":       "photos",
	"gallery": "photos",
	"st":      "stats",

	// Choices
	"pick":   "choose",
	"c":      "choose",
	"select": "choose",
}

// ParseCommand turns an input line into an Intent. A bare number is a
// choice pick.
func ParseCommand(input string) Intent {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return Intent{N: -1}
	}

	if n, err := strconv.Atoi(fields[0]); err == nil {
		return Intent{Verb: "choose", N: n}
	}

	verb := fields[0]
	if canonical, ok := verbAliases[verb]; ok {
		verb = canonical
	}

	in := Intent{Verb: verb, Arg: strings.Join(fields[1:], " "), N: -1}
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			in.N = n
		}
	}
	return in
}

// Package parser converts command strings into Intent structs.
// Intentionally dumb: no NLP, just pattern matching.
package parser

import (
	"strings"

	"github.com/nathoo/dragonsrealm/types"
)

// Movement keys double as one-word commands, the same letters the
// keyboard dispatcher binds.
var directionExpansions = map[string]string{
	"w":     "up",
	"s":     "down",
	"a":     "left",
	"d":     "right",
	"u":     "up",
	"n":     "up",
	"north": "up",
	"south": "down",
	"west":  "left",
	"east":  "right",
	"up":    "up",
	"down":  "down",
	"left":  "left",
	"right": "right",
}

var verbAliases = map[string]string{
	// Look
	"l":   "look",
	"map": "look",

	// Movement
	"walk": "go",
	"move": "go",
	"step": "go",

	// Take
	"e":      "take",
	"get":    "take",
	"grab":   "take",
	"pickup": "take",

	// Drop
	"discard": "drop",

	// Use
	"drink":   "use",
	"quaff":   "use",
	"equip":   "use",
	"wear":    "use",
	"consume": "use",

	// Say
	"chat":  "say",
	"tell":  "say",
	"shout": "say",

	// Miscellaneous
	"inv":    "inventory",
	"i":      "inventory",
	"stat":   "stats",
	"status": "stats",
	"z":      "wait",
	"h":      "help",
	"?":      "help",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command string into an Intent.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	// A leading quote is shorthand for say; the text keeps its case.
	if strings.HasPrefix(input, "'") || strings.HasPrefix(input, "\"") {
		return types.Intent{Verb: "say", Object: strings.TrimSpace(input[1:])}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "w", "left", etc. → go <direction>
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Intent{Verb: "go", Object: dir}
		}
	}

	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}
	verb := words[0]

	switch verb {
	case "say":
		return types.Intent{Verb: "say", Object: restOf(input)}
	case "go":
		obj := ""
		if len(words) > 1 {
			obj = words[1]
			if dir, ok := directionExpansions[obj]; ok {
				obj = dir
			}
		}
		return types.Intent{Verb: "go", Object: obj}
	}

	rest := stripArticles(words[1:])
	return types.Intent{
		Verb:   verb,
		Object: strings.Join(rest, " "),
	}
}

// expandMultiWordVerbs handles "pick up", "look around", "put down".
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "look":
		if words[1] == "around" {
			return append([]string{"look"}, words[2:]...)
		}
	case "put":
		if words[1] == "down" {
			return append([]string{"drop"}, words[2:]...)
		}
	}

	return words
}

// restOf returns the original-case text after the first word.
func restOf(input string) string {
	i := strings.IndexFunc(input, func(r rune) bool { return r == ' ' || r == '\t' })
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(input[i:])
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

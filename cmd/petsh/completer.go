package main

import (
	"strings"

	"battlepets/petlookup"
)

var commands = []string{
	"get", "counters", "type", "types", "chart",
	"state", "clear", "help", "exit", "quit",
}

// Completer provides tab completion for the shell
type Completer struct{}

// Do implements readline.AutoCompleter interface
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	words := strings.Fields(text)

	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(text, " ")) {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return complete(commands, prefix), len(prefix)
	}

	partial := ""
	if !strings.HasSuffix(text, " ") {
		partial = words[len(words)-1]
	}

	switch words[0] {
	case "counters", "c", "type", "chart":
		if len(words) > 2 || (len(words) == 2 && partial == "") {
			return nil, 0
		}
		names := make([]string, 0, len(petlookup.PetTypes()))
		for _, pt := range petlookup.PetTypes() {
			names = append(names, string(pt))
		}
		return complete(names, partial), len(partial)
	}

	return nil, 0
}

// complete returns the suffixes of candidates that start with prefix
func complete(candidates []string, prefix string) [][]rune {
	var out [][]rune
	for _, cand := range candidates {
		if len(cand) >= len(prefix) && strings.EqualFold(cand[:len(prefix)], prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out
}

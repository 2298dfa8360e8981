// Package repl provides the interactive shell mode for mapkit-bench.
package repl

import "strings"

// Completer provides command completion for the shell.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"new", "new hash", "new array",
			"info",
			"set", "get", "has", "del", "delifeq",
			"setnx", "replace", "cas", "incr", "merge",
			"keys", "len", "sweep", "clear",
			"help", "exit", "quit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Resolve expands an abbreviated command to its full name. It returns the
// canonical command when prefix is a command or names exactly one, and the
// candidate list otherwise.
func (c *Completer) Resolve(prefix string) (string, []string) {
	matches := c.Complete(prefix)

	// Multi-word suggestions ("new hash") collapse to their first word.
	seen := make(map[string]bool)
	var cmds []string

	for _, m := range matches {
		word, _, _ := strings.Cut(m, " ")
		if word == prefix {
			return word, nil
		}
		if !seen[word] {
			seen[word] = true
			cmds = append(cmds, word)
		}
	}

	if len(cmds) == 1 {
		return cmds[0], nil
	}

	return "", cmds
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"battlepets/petlookup"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: petsh [CONFIG_FILE]")
		fmt.Println("Example: petsh config.yaml")
		os.Exit(1)
	}

	var configPath string
	if len(os.Args) == 2 {
		configPath = os.Args[1]
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	session, err := petlookup.OpenSession(configPath, nil)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := NewShell(ctx, session.Controller, os.Stdout)
	defer sh.Close()

	fmt.Printf("Battle pet service: %s\n", session.Config.Endpoint)
	fmt.Println("Type 'help' for commands")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            sh.Prompt(),
		HistoryFile:       os.ExpandEnv("$HOME/.petsh_history"),
		AutoComplete:      &Completer{},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		HistoryLimit:      1000,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	// REPL loop
	for {
		rl.SetPrompt(sh.Prompt())

		line, err := rl.Readline()
		if err != nil {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		if err := sh.Execute(cmd, args); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		if cmd == "exit" || cmd == "quit" || cmd == "q" {
			break
		}
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"battlepets/petlookup"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: petui [CONFIG_FILE]")
		os.Exit(1)
	}

	var configPath string
	if len(os.Args) == 2 {
		configPath = os.Args[1]
	}

	// the screen belongs to the UI, so logs only go to the configured file
	session, err := petlookup.OpenSession(configPath, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	changes := make(chan struct{}, 1)
	unsubscribe := session.Controller.Subscribe(func(petlookup.LookupState) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session.Log.Info("petui starting", "endpoint", session.Config.Endpoint)

	m := NewModel(ctx, session.Controller, changes)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"inkform/internal/store"
	"inkform/internal/submit"
	"inkform/internal/tui"
)

const defaultEndpoint = "http://localhost:8080"

func main() {
	endpoint := flag.String("endpoint", "", "submission endpoint base URL (default $INKFORM_ENDPOINT or "+defaultEndpoint+")")
	storeDir := flag.String("store", "", "directory for saved form progress (default ~/.inkform)")
	debug := flag.Bool("debug", false, "write debug logs to inkform.log")
	flag.Parse()

	if *debug {
		f, err := tea.LogToFile("inkform.log", "inkform")
		if err != nil {
			fmt.Fprintln(os.Stderr, "open log file:", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		// The TUI owns the terminal; stray log output would corrupt it.
		log.SetOutput(io.Discard)
	}

	url := resolveEndpoint(*endpoint)
	dir, err := resolveStoreDir(*storeDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := tui.New(store.NewFileStore(dir), submit.NewClient(url))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveEndpoint prefers the flag, then the environment, then the default.
func resolveEndpoint(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("INKFORM_ENDPOINT")); v != "" {
		return v
	}
	return defaultEndpoint
}

func resolveStoreDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".inkform"), nil
}

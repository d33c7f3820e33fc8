package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"healthdash/internal/api"
	"healthdash/internal/config"
	"healthdash/internal/logger"
	"healthdash/internal/session"
	"healthdash/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Printf("Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.New("healthdash", cfg.Log.Level, logOut)

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	storage := session.NewFileStorage(cfg.Session.File)
	store := session.NewStore(client, storage, cfg.Session.TTL)

	client.SetInterceptor(func(req *http.Request) {
		if token := store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	})

	// The watcher fires outside the event loop; it logs the store out and
	// pushes the expiry into the running program.
	var p *tea.Program
	watcher := session.NewWatcher(func() {
		store.Logout()
		log.Info("session expired, forcing logout")
		if p != nil {
			p.Send(ui.SessionExpiredMsg{})
		}
	})
	defer watcher.Stop()

	log.Info("starting against %s", cfg.API.BaseURL)

	p = tea.NewProgram(
		ui.NewModel(client, store, watcher),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/tryluck/internal/config"
	"github.com/rovshanmuradov/tryluck/internal/events"
	"github.com/rovshanmuradov/tryluck/internal/history"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/logger"
	"github.com/rovshanmuradov/tryluck/internal/session"
	"github.com/rovshanmuradov/tryluck/internal/ui"
	"github.com/rovshanmuradov/tryluck/internal/ui/screen"
)

const eventBufferSize = 256

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The TUI owns stdout, so logs go to a rotating file.
	appLogger, err := logger.CreateFileLogger(logger.FileConfig{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Debug:      cfg.DebugLogging,
	})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("Starting tryluck TUI", zap.String("language", cfg.Language))

	bus := events.NewBus(appLogger, eventBufferSize)

	journal, err := history.NewJournal(cfg.HistoryDir, cfg.HistorySize, appLogger)
	if err != nil {
		log.Fatalf("Failed to open round journal: %v", err)
	}
	bus.Subscribe(events.RoundFinished, journal)

	lang, err := locale.ParseLanguage(cfg.Language)
	if err != nil {
		log.Fatalf("Invalid language: %v", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sender := ui.NewUpdateSender(ui.Bus, appLogger)
	deps := screen.Deps{
		Session: session.NewController(lang, bus, appLogger),
		Journal: journal,
		Keys:    ui.DefaultKeyMap(),
		Rand:    rand.New(rand.NewSource(seed)),
		Logger:  appLogger,
	}

	program := tea.NewProgram(
		NewAppModel(cfg, deps, sender),
		tea.WithAltScreen(),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := program.Run(); err != nil {
			appLogger.Error("TUI application failed", zap.Error(err))
		}
	}()

	select {
	case <-rootCtx.Done():
		program.Quit()
		<-done
	case <-done:
	}

	appLogger.Info("Shutting down TUI application")
	sender.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := bus.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("Event bus shutdown failed", zap.Error(err))
	}
	if err := journal.Close(); err != nil {
		appLogger.Warn("Failed to close round journal", zap.Error(err))
	}
}

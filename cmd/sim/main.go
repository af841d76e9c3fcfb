package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/tryluck/internal/config"
	"github.com/rovshanmuradov/tryluck/internal/events"
	"github.com/rovshanmuradov/tryluck/internal/export"
	"github.com/rovshanmuradov/tryluck/internal/game"
	"github.com/rovshanmuradov/tryluck/internal/history"
	"github.com/rovshanmuradov/tryluck/internal/locale"
	"github.com/rovshanmuradov/tryluck/internal/logger"
	"github.com/rovshanmuradov/tryluck/internal/session"
)

// simOptions are the command line settings of a simulation run
type simOptions struct {
	Rounds      int
	Concurrency int
	Real        bool
	Deposit     float64
	Tick        time.Duration
	Countdown   time.Duration
	ExportDir   string
	Format      string
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to config file")
	opts := simOptions{}
	flag.IntVar(&opts.Rounds, "rounds", 100, "Number of rounds to play")
	flag.IntVar(&opts.Concurrency, "concurrency", 4, "Rounds played in parallel (entertainment mode only)")
	flag.BoolVar(&opts.Real, "real", false, "Play real mode with experience gold plus -deposit")
	flag.Float64Var(&opts.Deposit, "deposit", 0, "Amount deposited before real mode rounds")
	flag.DurationVar(&opts.Tick, "tick", time.Millisecond, "Wall time between price ticks")
	flag.DurationVar(&opts.Countdown, "countdown", 0, "Wall time per countdown second (0 keeps the configured tick ratio)")
	flag.StringVar(&opts.ExportDir, "export", "", "Directory to export the played rounds to")
	flag.StringVar(&opts.Format, "format", "csv", "Export format: csv or json")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	if _, err := run(rootCtx, cfg, opts, appLogger); err != nil {
		appLogger.Error("Simulation failed", zap.Error(err))
	}
}

// countdownInterval returns the wall time per countdown second. Unless set
// explicitly it keeps the configured number of price ticks per game second,
// so accelerated rounds move as far as rounds played in the TUI.
func countdownInterval(cfg *config.Config, opts simOptions) time.Duration {
	if opts.Countdown > 0 {
		return opts.Countdown
	}
	if cfg.TickInterval <= 0 {
		return opts.Tick
	}
	return opts.Tick * cfg.CountdownInterval / cfg.TickInterval
}

// simReport is what a finished simulation produced
type simReport struct {
	Stats   history.Statistics
	Rounds  []history.Record
	Balance decimal.Decimal
}

func run(ctx context.Context, cfg *config.Config, opts simOptions, appLogger *zap.Logger) (simReport, error) {
	if opts.Tick <= 0 {
		opts.Tick = time.Millisecond
	}
	opts.Countdown = countdownInterval(cfg, opts)

	bus := events.NewBus(appLogger, opts.Rounds*4+16)
	journal, err := history.NewJournal(cfg.HistoryDir, opts.Rounds, appLogger)
	if err != nil {
		return simReport{}, fmt.Errorf("failed to open journal: %w", err)
	}
	bus.Subscribe(events.RoundFinished, journal)

	lang, err := locale.ParseLanguage(cfg.Language)
	if err != nil {
		return simReport{}, err
	}
	sess := session.NewController(lang, bus, appLogger)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := &simulator{
		cfg:    cfg,
		opts:   opts,
		sess:   sess,
		rng:    rand.New(rand.NewSource(seed)),
		logger: appLogger.Named("sim"),
	}

	if opts.Real {
		sess.ClaimExperience()
		if opts.Deposit > 0 {
			if err := sess.Deposit(decimal.NewFromFloat(opts.Deposit)); err != nil {
				return simReport{}, err
			}
		}
		opts.Concurrency = 1
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := 0; i < opts.Rounds; i++ {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			return sim.playOne(gCtx)
		})
	}
	runErr := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := bus.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("Event bus shutdown failed", zap.Error(err))
	}

	report := simReport{
		Stats:   journal.Statistics(),
		Rounds:  journal.Recent(0),
		Balance: sess.State().Balance,
	}
	appLogger.Info("Simulation completed",
		zap.Int("rounds", report.Stats.Rounds),
		zap.Float64("win_rate", report.Stats.WinRate),
		zap.Float64("total_pnl", report.Stats.TotalPnL),
		zap.Duration("tick", opts.Tick),
		zap.Duration("countdown", opts.Countdown),
		zap.String("balance", report.Balance.StringFixed(2)))

	if opts.ExportDir != "" {
		exporter := export.NewRoundExporter(appLogger)
		path, err := exporter.ExportRounds(report.Rounds, export.ExportOptions{
			Format:    export.ExportFormat(opts.Format),
			OutputDir: opts.ExportDir,
		})
		if err != nil && !errors.Is(err, export.ErrNoRounds) {
			appLogger.Error("Export failed", zap.Error(err))
		} else if err == nil {
			appLogger.Info("Rounds exported", zap.String("path", path))
		}
	}

	if err := journal.Close(); err != nil {
		appLogger.Warn("Failed to close journal", zap.Error(err))
	}

	if errors.Is(runErr, errBalanceExhausted) || errors.Is(runErr, context.Canceled) {
		return report, nil
	}
	return report, runErr
}

var errBalanceExhausted = errors.New("balance exhausted")

type simulator struct {
	cfg    *config.Config
	opts   simOptions
	sess   *session.Controller
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func (s *simulator) draw() (game.PositionConfig, *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := session.RandomPosition(s.rng)
	return pos, rand.New(rand.NewSource(s.rng.Int63()))
}

func (s *simulator) playOne(ctx context.Context) error {
	pos, rng := s.draw()

	if s.opts.Real {
		// Stakes are whole cents; a float stake of the raw balance can exceed it.
		balance := s.sess.State().Balance.RoundDown(2)
		if !balance.IsPositive() {
			return errBalanceExhausted
		}
		defaults := session.RealDefaults(balance)
		pos.Stake = defaults.Stake
	}

	round, err := s.sess.OpenRound(pos, game.RoundOptions{
		EntryPrice:        s.cfg.StartPrice,
		Volatility:        s.cfg.Volatility,
		Duration:          s.cfg.RoundDuration,
		TickInterval:      s.opts.Tick,
		CountdownInterval: s.opts.Countdown,
		Rand:              rng,
		Logger:            s.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open round: %w", err)
	}

	if err := round.Run(ctx); err != nil {
		return err
	}

	if _, err := s.sess.Settle(round); err != nil {
		return fmt.Errorf("failed to settle round %s: %w", round.ID(), err)
	}
	return nil
}

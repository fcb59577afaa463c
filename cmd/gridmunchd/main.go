package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gridmunch/server/internal/config"
	"github.com/gridmunch/server/internal/core/event"
	coresys "github.com/gridmunch/server/internal/core/system"
	"github.com/gridmunch/server/internal/game"
	"github.com/gridmunch/server/internal/maze"
	"github.com/gridmunch/server/internal/persist"
	"github.com/gridmunch/server/internal/scripting"
	"github.com/gridmunch/server/internal/stats"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            gridmunch  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        maze chase game server             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s\n\n", serverName)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("GRIDMUNCH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name)

	// 3. Connect to PostgreSQL and run migrations. An empty DSN runs
	// the game without a leaderboard.
	var scoreRepo *persist.ScoreRepo
	var eventRepo *persist.EventLogRepo
	if cfg.Database.DSN != "" {
		printSection("database")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("postgres connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		cancel()
		printOK("migrations applied")
		fmt.Println()

		scoreRepo = persist.NewScoreRepo(db)
		eventRepo = persist.NewEventLogRepo(db)
	}

	// 4. Load data tables
	printSection("data")

	mazes, err := maze.LoadTable(filepath.Join(cfg.Game.DataDir, "maze_list.yaml"))
	if err != nil {
		return fmt.Errorf("load mazes: %w", err)
	}
	printStat("mazes", mazes.Count())

	levels, err := stats.LoadTable(filepath.Join(cfg.Game.DataDir, "level_list.yaml"))
	if err != nil {
		return fmt.Errorf("load levels: %w", err)
	}
	printStat("levels", levels.Count())

	mz := mazes.Get(cfg.Game.Maze)
	if mz == nil {
		return fmt.Errorf("maze %q not in table", cfg.Game.Maze)
	}

	// 5. Initialize Lua scripting engine
	engine, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	// 6. Assemble the session and register systems
	bus := event.NewBus()
	w := game.NewWorld(game.Config{
		Lives:         cfg.Game.Lives,
		Invincible:    cfg.Debug.Invincible,
		TargetOverlay: cfg.Debug.TargetOverlay,
	}, game.Deps{
		Log:    log,
		Bus:    bus,
		Maze:   mz,
		Levels: levels,
		Engine: engine,
		Scores: scoreRepo,
		Events: eventRepo,
	})
	runner := coresys.NewRunner()
	game.RegisterSystems(runner, w)

	// 7. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("maze %q, %d dots", mz.Name(), mz.DotsRemaining()))
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Game.TickRate))
	fmt.Println()

	statusCounter := 0
	const statusInterval = 1875 // 1875 ticks x 16ms = 30 seconds

	for {
		select {
		case <-ticker.C:
			if err := runner.Tick(cfg.Game.TickRate); err != nil {
				return fmt.Errorf("tick: %w", err)
			}
			if w.SessionState() == game.StateGameOver {
				log.Info("session over",
					zap.Int64("score", w.Score()),
					zap.Int("level", w.LevelNum()))
				return nil
			}
			statusCounter++
			if statusCounter >= statusInterval {
				statusCounter = 0
				log.Info("session status",
					zap.Int64("score", w.Score()),
					zap.Int("lives", w.Lives()),
					zap.Int("level", w.LevelNum()),
					zap.Int("dots", mz.DotsRemaining()))
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

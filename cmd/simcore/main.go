package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/l1jgo/simcore/internal/ai"
	"github.com/l1jgo/simcore/internal/combat"
	"github.com/l1jgo/simcore/internal/config"
	"github.com/l1jgo/simcore/internal/core/ecs"
	"github.com/l1jgo/simcore/internal/core/event"
	coresys "github.com/l1jgo/simcore/internal/core/system"
	"github.com/l1jgo/simcore/internal/data"
	"github.com/l1jgo/simcore/internal/persist"
	"github.com/l1jgo/simcore/internal/physics"
	"github.com/l1jgo/simcore/internal/present"
	"github.com/l1jgo/simcore/internal/progression"
	"github.com/l1jgo/simcore/internal/sched"
	"github.com/l1jgo/simcore/internal/scripting"
	"github.com/l1jgo/simcore/internal/stats"
	"github.com/l1jgo/simcore/internal/system"
	"github.com/l1jgo/simcore/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", "simcore · headless simulation")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mrun:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Simulation ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/simcore.toml"
	if p := os.Getenv("SIMCORE_CONFIG"); p != "" {
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

	// 3. Load YAML data
	printSection("Data")
	store, err := data.Load(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	printStat("Mob templates", store.Mobs.Count())
	printStat("Skills", store.Skills.Count())
	printStat("Items", store.Items.Count())
	printStat("Spawn entries", len(store.Spawns))

	// 4. Balance scripts
	engine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}
	defer engine.Close()
	printOK("Lua balance scripts loaded")

	// 5. Assemble the world
	printSection("World")
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	clock := sched.New()
	bus := event.NewBus()
	phys := physics.New(store.Zone.Bounds, store.Zone.Obstacles)

	ws := world.NewState(world.Options{
		Clock:       clock,
		Rand:        rng,
		Physics:     phys,
		Mobs:        store.Mobs,
		Items:       store.Items.WithLogger(log.Named("items")),
		Weights:     store.Weights,
		Multipliers: engine,
		Curve: progression.Curve{
			BaseExp:  cfg.Progression.BaseExp,
			Growth:   cfg.Progression.Growth,
			MaxLevel: cfg.Progression.MaxLevel,
		},
		Timing: timingFromConfig(cfg.Simulation),
		Combat: combat.Options{
			RangeExtender: cfg.Combat.SkillRangeExtender,
			CastPoll:      cfg.Combat.CastPoll,
			CooldownTick:  cfg.Combat.CooldownTick,
		},
		PointsPerLevel: cfg.Progression.PointsPerLevel,
		TargetRange:    cfg.Combat.TabTargetRange,
		Bus:            bus,
		Log:            log,
	})

	// 6. Optional database: restore the character, then autosave
	var (
		db      *persist.DB
		player  *world.Player
		persSys *system.PersistenceSystem
	)
	if cfg.Database.Enabled {
		printSection("Database")
		db, player, err = openDatabase(cfg, ws, log)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	if player == nil {
		player = ws.NewPlayer(world.PlayerSpec{
			Name:       cfg.Server.PlayerName,
			Attributes: store.Zone.Attributes,
			Pos:        store.Zone.Start,
		})
		for _, name := range store.Zone.Equipment {
			player.Equip(name)
		}
		player.Replenish()
	}
	spawned := ws.SpawnAll(data.SpawnPoints(store.Spawns))
	printStat("Mobs spawned", spawned)
	printStat("Player level", player.Level())

	sink, err := present.NewLogSink(log.Named("sim"), cfg.Server.Locale, nameFunc(ws, store.Mobs))
	if err != nil {
		return err
	}
	sink.Attach(bus, player.ID())

	// 7. Systems
	runner := coresys.NewRunner()
	runner.Register(system.NewAutopilotSystem(ws, phys, clock, bus, log.Named("autopilot"), system.AutopilotConfig{
		Skills:     playerSkills(store.Skills, store.Zone.Skills, log),
		AllocateTo: stats.Constitution,
	}))
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewClockSystem(clock))
	runner.Register(system.NewMobAISystem(ws))
	runner.Register(system.NewMovementSystem(phys, ws))
	runner.Register(system.NewRegenSystem(ws, engine, cfg.Regen.Interval, cfg.Regen.HPPerSecond, cfg.Regen.MPPerSecond))
	if db != nil {
		persSys = system.NewPersistenceSystem(ws, bus,
			persist.NewProgressionRepo(db), persist.NewExpLogRepo(db),
			log.Named("persist"), cfg.Database.SaveInterval)
		runner.Register(persSys)
	}

	// 8. Run: game loop, signal watcher and autosave writer
	printSection("Running")
	printOK(fmt.Sprintf("tick %s, seed %d", cfg.Simulation.TickRate, seed))
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if persSys != nil {
		g.Go(func() error {
			return persSys.Run(gctx)
		})
	}

	g.Go(func() error {
		defer cancel()
		ticks := gameLoop(gctx, runner, cfg.Simulation.TickRate, cfg.Simulation.Duration)

		// Deliver what the last tick emitted, then flush the ledger and save.
		bus.SwapBuffers()
		bus.DispatchAll()
		if persSys != nil {
			persSys.RequestSave()
			runner.TickPhase(coresys.PhasePersist, 0)
			persSys.Close()
		}
		log.Info("simulation stopped",
			zap.Int("ticks", ticks),
			zap.Duration("virtual_time", clock.Now()),
			zap.Duration("uptime", time.Since(time.Unix(cfg.Server.StartTime, 0)).Round(time.Millisecond)),
			zap.Int("level", player.Level()),
			zap.Int64("total_exp", player.Progression().TotalExp()))
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	log.Info(sink.Summary())
	return nil
}

// gameLoop ticks the runner at a fixed rate until ctx is done or the virtual
// duration elapses. Returns the number of ticks run.
func gameLoop(ctx context.Context, runner *coresys.Runner, tick, duration time.Duration) int {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var elapsed time.Duration
	ticks := 0
	for {
		select {
		case <-ticker.C:
			runner.Tick(tick)
			ticks++
			elapsed += tick
			if duration > 0 && elapsed >= duration {
				return ticks
			}
		case <-ctx.Done():
			return ticks
		}
	}
}

func openDatabase(cfg *config.Config, ws *world.State, log *zap.Logger) (*persist.DB, *world.Player, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	version, err := persist.RunMigrations(ctx, db.Pool)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	printOK(fmt.Sprintf("schema version %d", version))

	snap, err := persist.NewProgressionRepo(db).Load(ctx, cfg.Server.PlayerName)
	switch {
	case errors.Is(err, persist.ErrNotFound):
		printOK("new character " + cfg.Server.PlayerName)
		return db, nil, nil
	case err != nil:
		db.Close()
		return nil, nil, fmt.Errorf("load character: %w", err)
	}
	p := ws.RestorePlayer(snap)
	printOK(fmt.Sprintf("restored %s at level %d", p.Name, p.Level()))
	return db, p, nil
}

func timingFromConfig(c config.SimulationConfig) ai.Timing {
	return ai.Timing{
		IdleMin:         c.IdleMin,
		IdleMax:         c.IdleMax,
		WanderMin:       c.WanderMin,
		WanderMax:       c.WanderMax,
		VisionDistance:  c.VisionDistance,
		ChaseSpeedMult:  c.ChaseSpeedMult,
		StuckInterval:   c.StuckInterval,
		StuckThreshold:  c.StuckThreshold,
		UnstickDuration: c.UnstickDuration,
		HideDelay:       c.HideDelay,
		RespawnDelay:    c.RespawnDelay,
	}
}

func playerSkills(table *data.SkillTable, ids []int, log *zap.Logger) []combat.Skill {
	out := make([]combat.Skill, 0, len(ids))
	for _, id := range ids {
		sk := table.Get(id)
		if sk == nil {
			log.Warn("zone references unknown skill", zap.Int("skill", id))
			continue
		}
		out = append(out, *sk)
	}
	return out
}

// nameFunc labels entities in presentation output.
func nameFunc(ws *world.State, mobs ai.TemplateSource) present.NameFunc {
	return func(id ecs.EntityID) string {
		if p := ws.Player; p != nil && p.ID() == id {
			return p.Name
		}
		if a, ok := ws.Mobs.Get(id); ok {
			if tpl, ok := mobs.Template(a.TemplateID()); ok {
				return tpl.Name + id.String()
			}
		}
		return id.String()
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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/townsim/internal/adapters"
	"github.com/l1jgo/townsim/internal/config"
	"github.com/l1jgo/townsim/internal/core/event"
	"github.com/l1jgo/townsim/internal/npc"
	"github.com/l1jgo/townsim/internal/persist"
	"github.com/l1jgo/townsim/internal/simtime"
	"github.com/l1jgo/townsim/internal/townsim"
	"github.com/l1jgo/townsim/internal/worldmap"
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

func printBanner(serverName string, townID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            townsim  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       tile-town behaviour core             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mtown:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, townID)
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

// ── Main demo loop ──────────────────────────────────────────────────

func run() error {
	cfgPath := "config/townsim.toml"
	if p := os.Getenv("TOWNSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// The demo runs happily on defaults if no config file is present —
		// only a malformed file is fatal.
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Defaults()
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.TownID)

	printSection("persistence")
	store, closeStore := openStore(cfg, log)
	defer closeStore()

	printSection("town")
	fixturePath := "data/towns/sample_village.yaml"
	if p := os.Getenv("TOWNSIM_TOWN"); p != "" {
		fixturePath = p
	}
	town, err := worldmap.LoadTownFixture(fixturePath)
	if err != nil {
		return fmt.Errorf("load town fixture: %w", err)
	}
	printStat("buildings", len(town.Buildings))
	printStat("shops", len(town.Shops))
	printStat("props", len(town.Props))

	rng := adapters.NewMathRandRNG(cfg.Server.Seed)
	combat := loadCombatAdapter(cfg, log, rng)
	loot := adapters.SimpleLoot{Table: map[string][]adapters.Item{
		"bandit": {{ItemID: 1001, Name: "rusty dagger", Count: 1}},
		"guard":  {{ItemID: 1002, Name: "guard badge", Count: 1}},
	}}
	camera := adapters.FixedCamera{View: adapters.Viewport{Width: 640, Height: 480}, PixelsPerTile: 32}

	sched := townsim.NewScheduler(town, rng, combat, loot, camera, adapters.NewZapLogger(log))
	if cfg.Scheduler.ActiveCap > 0 {
		sched.ActiveCap = cfg.Scheduler.ActiveCap
	}
	event.Subscribe(sched.Events, func(e townsim.ActorDied) {
		log.Info("actor died", zap.Int("actor_id", e.ActorID), zap.Int("x", e.X), zap.Int("y", e.Y))
	})
	event.Subscribe(sched.Events, func(e townsim.CorpseSpawned) {
		log.Info("corpse spawned", zap.String("kind", e.Kind), zap.Int("x", e.X), zap.Int("y", e.Y))
	})
	event.Subscribe(sched.Events, func(townsim.BanditEventStarted) {
		log.Warn("bandit event started")
	})
	event.Subscribe(sched.Events, func(townsim.BanditEventEnded) {
		log.Info("bandit event ended")
	})

	restored := false
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		snap, ok, err := store.Load(ctx, cfg.Server.TownID)
		cancel()
		if err != nil {
			log.Warn("load snapshot failed, starting fresh", zap.Error(err))
		} else if ok {
			restoreRoster(sched.Roster, snap)
			sched.Corpses = snap.Corpses
			restored = true
			printOK(fmt.Sprintf("restored %d actors from snapshot at turn %d", len(snap.Actors), snap.Turn))
		}
	}
	if !restored {
		n := spawnDemoActors(sched.Roster, town, rng)
		printStat("npcs spawned", n)
	}

	printSection("ready")
	printReady(fmt.Sprintf("tick rate %s", cfg.Scheduler.TickRate))
	fmt.Println()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Scheduler.TickRate)
	defer ticker.Stop()

	clock := simtime.Clock{Hours: 8, Minutes: 0, Phase: simtime.Day}
	weather := simtime.Weather{}

	for {
		select {
		case <-ticker.C:
			clock = advanceClock(clock)
			sched.Tick(clock, weather, false, 0, 0, false)
			if clock.TurnCounter%20 == 0 {
				printStat(fmt.Sprintf("turn %d live actors", clock.TurnCounter), len(sched.Roster.All()))
			}
		case sig := <-shutdownCh:
			log.Info("shutting down", zap.String("signal", sig.String()))
			if store != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				snap := persist.TownSnapshot{TownID: cfg.Server.TownID, Turn: clock.TurnCounter}
				for _, a := range sched.Roster.All() {
					snap.Actors = append(snap.Actors, *a)
				}
				snap.Corpses = sched.Corpses
				if err := store.Save(ctx, snap); err != nil {
					log.Warn("save snapshot failed", zap.Error(err))
				}
				cancel()
			}
			return nil
		}
	}
}

func advanceClock(c simtime.Clock) simtime.Clock {
	c.TurnCounter++
	c.Minutes += 5
	if c.Minutes >= 60 {
		c.Minutes -= 60
		c.Hours = (c.Hours + 1) % 24
	}
	switch {
	case c.Hours >= 5 && c.Hours < 7:
		c.Phase = simtime.Dawn
	case c.Hours >= 7 && c.Hours < 19:
		c.Phase = simtime.Day
	case c.Hours >= 19 && c.Hours < 21:
		c.Phase = simtime.Dusk
	default:
		c.Phase = simtime.Night
	}
	return c
}

func openStore(cfg *config.Config, log *zap.Logger) (persist.SnapshotStore, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		log.Warn("postgres unavailable, falling back to in-memory snapshots", zap.Error(err))
		printOK("in-memory snapshot store (no database)")
		return persist.NewMemoryStore(), func() {}
	}
	if err := persist.RunMigrations(ctx, db.Pool); err != nil {
		log.Warn("migrations failed, falling back to in-memory snapshots", zap.Error(err))
		db.Close()
		return persist.NewMemoryStore(), func() {}
	}
	printOK("postgres snapshot store connected")
	return persist.NewPostgresStore(db, log), db.Close
}

func loadCombatAdapter(cfg *config.Config, log *zap.Logger, rng adapters.RNG) adapters.CombatAdapter {
	if cfg.Scripting.CombatScriptsDir == "" {
		return adapters.SimpleCombatPolicy{R: rng}
	}
	fallback := adapters.SimpleCombatPolicy{R: rng}
	lua, err := adapters.NewLuaCombatPolicy(cfg.Scripting.CombatScriptsDir, log, fallback)
	if err != nil {
		log.Warn("lua combat policy unavailable, using simple roll", zap.Error(err))
		return adapters.SimpleCombatPolicy{R: rng}
	}
	return lua
}

// spawnDemoActors seeds a fresh town with a small cast so the tick loop has
// something to drive: a handful of residents, one shopkeeper per shop, two
// guards, and one bandit.
func spawnDemoActors(roster *npc.Roster, town *worldmap.Town, rng adapters.RNG) int {
	n := 0
	for i, shop := range town.Shops {
		a, _ := roster.Spawn()
		a.Role = npc.RoleShopkeeper
		a.IsShopkeeper = true
		a.ShopRef = i
		a.BoundToBuilding = shop.BuildingID
		b := town.Buildings[shop.BuildingID]
		a.X, a.Y = b.Door.X, b.Door.Y
		n++
	}
	for i := 0; i < 2 && i < len(town.Buildings); i++ {
		a, _ := roster.Spawn()
		a.Role = npc.RoleGuard
		a.IsGuard = true
		a.X, a.Y = town.Plaza.X, town.Plaza.Y
		n++
	}
	for i, b := range town.Buildings {
		if len(b.Tags) == 0 {
			continue
		}
		isHome := false
		for _, t := range b.Tags {
			if t == "home" {
				isHome = true
			}
		}
		if !isHome {
			continue
		}
		a, _ := roster.Spawn()
		a.Role = npc.RoleResident
		a.IsResident = true
		a.Home = npc.HomeRef{Building: i, X: b.Door.X, Y: b.Door.Y, Door: b.Door}
		a.X, a.Y = b.Door.X, b.Door.Y
		n++
	}
	if town.HasInn() {
		a, _ := roster.Spawn()
		a.Role = npc.RoleBandit
		a.IsBandit = true
		a.X, a.Y = town.Plaza.X, town.Plaza.Y
		n++
	}
	return n
}

func restoreRoster(roster *npc.Roster, snap persist.TownSnapshot) {
	for _, saved := range snap.Actors {
		roster.Restore(saved)
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

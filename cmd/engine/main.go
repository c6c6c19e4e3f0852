// Command engine runs the collection pipeline against a scripted in-memory
// host at the real tick cadence. It exercises the full path a host embed
// would: collect, index, archive, broadcast.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"runewatch.ai/internal/hostapi"
	"runewatch.ai/internal/hostapi/hostfake"
	persistlog "runewatch.ai/internal/persistence/log"
	"runewatch.ai/internal/persistence/store"
	"runewatch.ai/internal/pricing"
	"runewatch.ai/internal/telemetry"
	"runewatch.ai/internal/telemetry/events"
	"runewatch.ai/internal/transport/observer"
	"runewatch.ai/internal/tuning"
)

func main() {
	var (
		addr       = flag.String("addr", "", "http listen address for the observer feed (overrides tuning; empty uses tuning, which may disable it)")
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		dbPath     = flag.String("db", "", "snapshot index path (overrides tuning)")
		archiveDir = flag.String("archive", "", "JSONL archive directory (overrides tuning)")
		playerName = flag.String("player", "demo_player", "scripted player name")
		worldID    = flag.Int("world", 301, "scripted world id")
		maxTicks   = flag.Uint64("ticks", 0, "stop after N ticks (0 runs until signalled)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[engine] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}
	if strings.TrimSpace(*addr) != "" {
		tune.ObserverAddr = strings.TrimSpace(*addr)
	}
	if strings.TrimSpace(*dbPath) != "" {
		tune.StorePath = strings.TrimSpace(*dbPath)
	}
	if strings.TrimSpace(*archiveDir) != "" {
		tune.ArchiveDir = strings.TrimSpace(*archiveDir)
	}

	ctx, cancel := signalContext()
	defer cancel()

	host := hostfake.New()
	script := newScript(host, *playerName, *worldID)

	prices := pricing.NewClient(
		tune.Pricing.Endpoint,
		time.Duration(tune.Pricing.TimeoutMs)*time.Millisecond,
		time.Duration(tune.Pricing.CacheTTLMs)*time.Millisecond,
		logger,
	)

	eng := telemetry.New(telemetry.Config{
		Client: host,
		Tuning: tune,
		Logger: logger,
		Prices: prices,
	})
	sess := telemetry.NewSession(*playerName, *worldID)
	logger.Printf("session %s started (tick every %s)", sess.ID, tune.TickDuration())

	idx, err := store.Open(tune.StorePath)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := idx.Close(); err != nil {
			logger.Printf("close store: %v", err)
		}
		logger.Printf("store: written=%d dropped=%d", idx.Written(), idx.Dropped())
	}()

	archive := persistlog.NewSnapshotLogger(tune.ArchiveDir)
	defer archive.Close()

	obs := observer.NewServer(logger)
	if tune.ObserverAddr != "" {
		startObserverHTTP(ctx, tune.ObserverAddr, sess, eng, obs, logger)
	}

	// Price refreshes happen off the tick thread; the oracle is cache-only
	// from the collection side.
	if tune.Pricing.Endpoint != "" {
		go refreshLoop(ctx, prices, logger)
	}

	ticker := time.NewTicker(tune.TickDuration())
	defer ticker.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			eng.Shutdown()
			logger.Printf("shutting down after tick %d", tick)
			logReport(eng, logger)
			return
		case <-ticker.C:
		}
		tick++

		script.step(eng, tick)

		snap, ok := eng.Collect(sess.ID, tick)
		if !ok {
			return
		}

		if !idx.Enqueue(snap) {
			logger.Printf("tick %d: snapshot dropped by store queue", tick)
		}
		if err := archive.WriteSnapshot(snap); err != nil {
			logger.Printf("tick %d: archive write: %v", tick, err)
		}
		if obs.ClientCount() > 0 {
			if raw, err := json.Marshal(snap); err == nil {
				obs.Broadcast(raw)
			}
		}

		if *maxTicks > 0 && tick >= *maxTicks {
			eng.Shutdown()
			logger.Printf("tick budget reached (%d)", tick)
			logReport(eng, logger)
			return
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func startObserverHTTP(ctx context.Context, addr string, sess telemetry.Session, eng *telemetry.Engine, obs *observer.Server, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		rep := eng.Monitor().Report()

		fmt.Fprintf(rw, "# HELP runewatch_tick_avg_ms Average collection time per tick.\n")
		fmt.Fprintf(rw, "# TYPE runewatch_tick_avg_ms gauge\n")
		fmt.Fprintf(rw, "runewatch_tick_avg_ms{session=%q} %.3f\n", sess.ID, float64(rep.Average)/float64(time.Millisecond))

		fmt.Fprintf(rw, "# HELP runewatch_slow_ticks_estimated Estimated ticks over budget.\n")
		fmt.Fprintf(rw, "# TYPE runewatch_slow_ticks_estimated gauge\n")
		fmt.Fprintf(rw, "runewatch_slow_ticks_estimated{session=%q} %d\n", sess.ID, rep.EstimatedSlowTicks)

		fmt.Fprintf(rw, "# HELP runewatch_observer_clients Connected observer websockets.\n")
		fmt.Fprintf(rw, "# TYPE runewatch_observer_clients gauge\n")
		fmt.Fprintf(rw, "runewatch_observer_clients{session=%q} %d\n", sess.ID, obs.ClientCount())
	})
	mux.HandleFunc("/v1/observer/ws", obs.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()
	go func() {
		logger.Printf("observer feed on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Printf("ListenAndServe: %v", err)
		}
	}()
}

func refreshLoop(ctx context.Context, prices *pricing.Client, logger *log.Logger) {
	t := time.NewTicker(30 * time.Second)
	defer t.Stop()
	for {
		if prices.Stale() {
			ctx2, cancel2 := context.WithTimeout(ctx, 10*time.Second)
			if err := prices.Refresh(ctx2); err != nil {
				logger.Printf("price refresh: %v", err)
			}
			cancel2()
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func logReport(eng *telemetry.Engine, logger *log.Logger) {
	rep := eng.Monitor().Report()
	logger.Printf("final: ticks=%d avg=%s score=%s est_slow=%d",
		rep.Ticks, rep.Average, rep.Score, rep.EstimatedSlowTicks)
	for _, ph := range rep.Phases {
		logger.Printf("  phase %-9s avg=%s latest=%s", ph.Name, ph.Average, ph.Latest)
	}
}

// script drives the fake host through a small loop of plausible activity so
// every collection phase has something to observe.
type script struct {
	host *hostfake.Client
	name string
}

func newScript(host *hostfake.Client, playerName string, worldID int) *script {
	host.State = hostapi.StateLoggedIn
	host.HasPlayer = true
	host.Player = hostapi.PlayerState{
		Name:        playerName,
		CombatLevel: 83,
		Pos:         hostapi.Point{X: 3222, Y: 3218},
		HealthRatio: 1,
	}
	host.WorldState = hostapi.WorldInfo{WorldID: worldID, Members: true}
	host.SkillLevels[hostapi.SkillAttack] = hostapi.SkillLevel{Level: 60, Boosted: 60, XP: 273742}
	host.SkillLevels[hostapi.SkillHitpoints] = hostapi.SkillLevel{Level: 65, Boosted: 65, XP: 449428}
	host.Inv = []hostapi.ItemStack{
		{Slot: 0, ID: 995, Quantity: 12_503},
		{Slot: 1, ID: 385, Quantity: 3},
	}
	host.Equipped[hostapi.SlotWeapon] = 4151
	host.Items[995] = hostapi.ItemComposition{ID: 995, Name: "Coins", Stackable: true, Tradeable: true, NoteTargetID: -1}
	host.Items[385] = hostapi.ItemComposition{ID: 385, Name: "Shark", Tradeable: true, NoteTargetID: -1, StorePrice: 300}
	host.Items[4151] = hostapi.ItemComposition{ID: 4151, Name: "Abyssal whip", Tradeable: true, NoteTargetID: -1, StorePrice: 120_001}
	host.NPCs = []hostapi.NPC{
		{Index: 11, ID: 3080, Pos: hostapi.Point{X: 3225, Y: 3220}, HealthRatio: 1},
	}
	host.Widgets = []int{161, 601}
	return &script{host: host, name: playerName}
}

func (s *script) step(eng *telemetry.Engine, tick uint64) {
	// Wander one tile east and back every 8 ticks.
	if tick%8 < 4 {
		s.host.Player.Pos.X++
	} else {
		s.host.Player.Pos.X--
	}
	idle := int64(0)
	if tick%5 == 0 {
		idle = 1200
	}
	s.host.Pointer = hostapi.Mouse{X: int(tick%500) + 100, Y: 300, IdleMillis: idle}
	s.host.Cam.Yaw = int(tick * 7 % 2048)

	if tick%10 == 0 {
		eng.OnChat(events.ChatMessage{
			Channel: "public", Sender: "other_player",
			Text: "buying gf", Timestamp: time.Now(),
		})
	}
	if tick%15 == 0 {
		eng.OnHitsplat(events.Hitsplat{
			TargetID: 11, OnLocal: false, Type: 1, Amount: int(tick % 12),
			Timestamp: time.Now(),
		})
	}
	if tick%25 == 0 {
		eng.OnItemSpawned(385, 1, hostapi.Point{X: 3224, Y: 3219}, tick, s.name)
	}
	if tick%40 == 0 {
		eng.OnKeyPress(events.KeyPress{KeyCode: 32, Timestamp: time.Now()})
	}
}

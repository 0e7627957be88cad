package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"gradlens-engine/internal/aggregate"
	"gradlens-engine/internal/config"
	"gradlens-engine/internal/events"
	"gradlens-engine/internal/handoff"
	"gradlens-engine/internal/httpapi"
	"gradlens-engine/internal/store"
)

func main() {
	// Engine data dir: env if provided (the shell can pass one), else local.
	dataDir := os.Getenv("GRADLENS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would race the sqlite file
	// and the CSV export.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("acquire data dir lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance holds %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, warn := range vr.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("config invalid: %s", vr.Errors[0])
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "gradlens.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	// Last run's dataset, if any, is served while the first run of this
	// process is still loading.
	var prevVal atomic.Value
	if prev, ok, err := aggregate.LoadPrevious(context.Background(), db.Pool); err != nil {
		log.Printf("[store] previous snapshot load failed: %v", err)
	} else if ok {
		prevVal.Store(prev)
		log.Printf("[store] previous snapshot available records=%d run_at=%s",
			len(prev.Postings), prev.RunAt.Format(time.RFC3339))
	}

	hub := events.NewHub()

	var statusVal atomic.Value // stores aggregate.Status
	statusVal.Store(aggregate.Status{})

	worker := &aggregate.Worker{DB: db.Pool, Hub: hub, Status: &statusVal}
	startRun := func(cfg config.Config) *handoff.Slot[aggregate.Dataset] {
		return worker.Start(context.Background(), cfg)
	}

	// Kick off the first aggregation immediately; the shell polls
	// /dataset/status while it runs.
	var slotVal atomic.Value
	slotVal.Store(startRun(cfg))

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:         hub,
		CfgVal:      &cfgVal,
		StatusVal:   &statusVal,
		SlotVal:     &slotVal,
		PrevVal:     &prevVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		StartRun:    startRun,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	port := cfg.App.Port
	if port == 0 {
		port = 38613
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

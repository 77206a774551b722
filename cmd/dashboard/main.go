package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"GoldBoard/internal/cache"
	"GoldBoard/internal/chart"
	"GoldBoard/internal/collector"
	"GoldBoard/internal/config"
	"GoldBoard/internal/news"
	"GoldBoard/internal/recorder"
	"GoldBoard/internal/refresh"
	"GoldBoard/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] GoldBoard starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRestFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Interval,
		cfg.DataSource.Window, cfg.IndicatorParams())

	// Init news fetcher
	nf := news.NewFetcher(cfg.News.PageURL, cfg.News.Limit, cfg.Proxy)
	log.Printf("[INFO] news source: %s", nf.Describe())

	// Init cache
	store := cache.NewStore(cfg.Cache.DataTTL.Std(), cfg.Cache.NewsTTL.Std())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init refresh pipeline
	pipeline := refresh.NewPipeline(col, nf, store, rec)
	if err := pipeline.RegisterAll(cfg.Schedule.DataCron, cfg.Schedule.NewsCron); err != nil {
		log.Fatalf("[FATAL] register refresh tasks: %v", err)
	}
	pipeline.Start()
	defer pipeline.Stop()

	// Optional: warm the cache on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing now")
		go func() {
			if _, err := pipeline.RefreshData(); err != nil {
				log.Printf("[ERROR] initial refresh: %v", err)
			}
			pipeline.RefreshNews()
		}()
	}

	// Init HTTP server
	srv, err := server.New(pipeline, chart.NewRenderer(960, 400))
	if err != nil {
		log.Fatalf("[FATAL] init server: %v", err)
	}
	httpSrv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] GoldBoard is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] GoldBoard stopped")
}

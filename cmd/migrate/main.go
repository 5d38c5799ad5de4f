package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"shopswift/internal/config"
	"shopswift/internal/db"
	"shopswift/internal/logging"
	"shopswift/internal/migrate"
)

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Print the current schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.Named("migrate")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if !showVersion {
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatal("read schema version", zap.Error(err))
	}
	logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kapu/wildrift-guide-go/internal/config"
	"github.com/kapu/wildrift-guide-go/internal/service/catalog"
	"github.com/kapu/wildrift-guide-go/internal/util"
	"go.uber.org/zap"
)

var (
	dataDir = flag.String("data-dir", "", "Champion data directory (defaults to DATA_DIR)")
	outPath = flag.String("out", "", "Index artifact path (defaults to INDEX_PATH)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *outPath != "" {
		cfg.Data.IndexPath = *outPath
	}
	if cfg.Data.IndexPath == "" {
		fmt.Fprintln(os.Stderr, "No index path: set INDEX_PATH or pass -out")
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger = logger.With(zap.String("run_id", uuid.NewString()))
	start := time.Now()

	champions, err := catalog.NewCatalog(catalog.Config{
		FS:        os.DirFS(cfg.Data.Dir),
		IndexPath: cfg.Data.IndexPath,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("Failed to create champion catalog", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	count, err := champions.Rebuild(ctx)
	if err != nil {
		logger.Fatal("Failed to build champion index", zap.Error(err))
	}

	logger.Info("Champion index written",
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("output", cfg.Data.IndexPath),
		zap.Int("champions", count),
		zap.Duration("elapsed", time.Since(start)),
	)
}

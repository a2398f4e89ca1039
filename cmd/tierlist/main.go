package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kapu/wildrift-guide-go/internal/config"
	"github.com/kapu/wildrift-guide-go/internal/report"
	"github.com/kapu/wildrift-guide-go/internal/service/catalog"
	"github.com/kapu/wildrift-guide-go/internal/service/guide"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"go.uber.org/zap"
)

var (
	dataDir   = flag.String("data-dir", "", "Champion data directory (defaults to DATA_DIR)")
	keepEmpty = flag.Bool("empty", false, "Print a row for tiers without champions")
)

func main() {
	flag.Parse()

	// Development logger writes to stderr, keeping stdout for the table.
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	champions, err := catalog.NewCatalog(catalog.Config{
		FS:          os.DirFS(cfg.Data.Dir),
		IndexPath:   cfg.Data.IndexPath,
		Concurrency: cfg.Cache.MaxConcurrentLoads,
		Normalizer:  normalizer.New(normalizer.WithPatch(cfg.Patch.Label)),
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("failed to create champion catalog", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	groups := guide.NewService(champions, nil, nil, logger).TierList(ctx)
	if _, err := fmt.Fprint(os.Stdout, report.TierTable(groups, *keepEmpty)); err != nil {
		logger.Fatal("failed to write tier table", zap.Error(err))
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kapu/wildrift-guide-go/internal/config"
	"github.com/kapu/wildrift-guide-go/internal/domain"
	"github.com/kapu/wildrift-guide-go/internal/service/catalog"
	"github.com/kapu/wildrift-guide-go/internal/service/database"
	"github.com/kapu/wildrift-guide-go/internal/service/normalizer"
	"go.uber.org/zap"
)

// CLI flags
var (
	dryRun  = flag.Bool("dry-run", false, "Normalize and validate without touching the database")
	dataDir = flag.String("data-dir", "", "Champion data directory (defaults to DATA_DIR)")
	verbose = flag.Bool("verbose", false, "Verbose output")
)

func main() {
	flag.Parse()

	log.Println("=================================")
	log.Println("Champion JSON to PostgreSQL export")
	log.Println("=================================")

	if *dryRun {
		log.Println("[DRY RUN MODE] No database changes will be made")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
		defer logger.Sync()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	champions, err := catalog.NewCatalog(catalog.Config{
		FS:          os.DirFS(cfg.Data.Dir),
		Concurrency: cfg.Cache.MaxConcurrentLoads,
		Normalizer:  normalizer.New(normalizer.WithPatch(cfg.Patch.Label)),
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to create champion catalog: %v", err)
	}

	loaded := champions.LoadAll(ctx)
	log.Printf("✓ Normalized %d champions from %s", len(loaded), cfg.Data.Dir)

	if err := validate(loaded); err != nil {
		log.Fatalf("Data validation failed: %v", err)
	}
	log.Println("✓ Data validation passed")

	if *dryRun {
		for _, c := range loaded {
			log.Printf("  → Would upsert: %s (%s, %s)", c.Identity.DisplayName, c.Identity.Slug, c.Classification.Rank)
		}
		log.Println("✓ Dry-run completed successfully")
		return
	}

	postgres, err := database.NewPostgresService(database.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		SSLMode:  cfg.Postgres.SSLMode,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer postgres.Close()

	repo := database.NewChampionRepository(postgres, logger)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	n, err := repo.UpsertChampions(ctx, loaded)
	if err != nil {
		log.Fatalf("Failed to export champions: %v", err)
	}
	log.Printf("✓ Exported %d champions", n)
	log.Println("✓ Migration completed successfully")
}

// validate rejects an export that would overwrite the table with nothing or with duplicate slugs.
func validate(champions []*domain.Champion) error {
	if len(champions) == 0 {
		return fmt.Errorf("no champions could be normalized")
	}
	seen := make(map[string]bool, len(champions))
	for _, c := range champions {
		if seen[c.Identity.Slug] {
			return fmt.Errorf("duplicate slug %q", c.Identity.Slug)
		}
		seen[c.Identity.Slug] = true
	}
	return nil
}

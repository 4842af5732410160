package main

import (
	"context"
	"log"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"teamkasse/internal/config"
	"teamkasse/internal/importer"
	"teamkasse/internal/repos"
)

func main() {
	cfg := config.Load()
	if cfg.LegacyDBDSN == "" {
		log.Fatal("LEGACY_DB_DSN ist nicht konfiguriert")
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	legacy, err := gorm.Open(postgres.Open(cfg.LegacyDBDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("legacy db: %v", err)
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatalf("target db: %v", err)
	}

	im := importer.New(
		legacy,
		repos.NewTeamRepo(db),
		repos.NewCategoryRepo(db),
		repos.NewProductRepo(db),
		repos.NewPurchaseRepo(db),
		zl,
	)

	res, err := im.Run(context.Background())
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	zl.Info().
		Int("categories", res.Categories).
		Int("teams", res.Teams).
		Int("teams_reused", res.TeamsReused).
		Int("products", res.Products).
		Int("products_skipped", res.ProductsSkipped).
		Int("purchases", res.Purchases).
		Int("bills_skipped", res.BillsSkipped).
		Msg("import finished")
}

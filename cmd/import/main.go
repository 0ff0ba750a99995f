package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/halalfood/halalfood/backend/api/internal/config"
	"github.com/halalfood/halalfood/backend/api/internal/database"
	"github.com/halalfood/halalfood/backend/api/internal/importer"
	"github.com/halalfood/halalfood/backend/api/internal/restaurant/repository"
	"github.com/halalfood/halalfood/backend/api/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

const batchSize = 1000

// Bulk importer: reads a listings workbook and inserts the rows in batches.
// A checkpoint ledger keyed by batch index makes interrupted runs resumable;
// pass -wipe to clear the collection (and the ledger) for a full reimport.
func main() {
	var (
		file       = flag.String("file", "canadian-halal-restaurants.xlsx", "path to the listings workbook")
		country    = flag.String("country", "Canada", "default country for rows without one")
		checkpoint = flag.String("checkpoint", "", "checkpoint ledger path (default <file>.checkpoint)")
		wipe       = flag.Bool("wipe", false, "delete existing restaurants before importing")
	)
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	col := client.Database(cfg.MongoDB.Database).Collection("restaurants")
	if err := database.EnsureRestaurantIndexes(ctx, col); err != nil {
		logger.Warnf("index creation failed: %v", err)
	}
	repo := repository.NewMongoRepo(col)

	logger.Infof("reading workbook %s", *file)
	res, err := importer.ParseWorkbook(*file, *country)
	if err != nil {
		logger.Fatalf("failed to parse workbook: %v", err)
	}
	logger.Infof("found %d valid restaurants, skipped %d invalid rows", len(res.Restaurants), res.Skipped)

	cpPath := *checkpoint
	if cpPath == "" {
		cpPath = *file + ".checkpoint"
	}
	if *wipe {
		if _, err := col.DeleteMany(ctx, bson.M{}); err != nil {
			logger.Fatalf("failed to clear existing restaurants: %v", err)
		}
		_ = os.Remove(cpPath)
		logger.Infof("cleared existing restaurants")
	}

	cp, err := importer.OpenCheckpoint(cpPath)
	if err != nil {
		logger.Fatalf("failed to open checkpoint: %v", err)
	}
	defer cp.Close()

	imported := 0
	for i := 0; i < len(res.Restaurants); i += batchSize {
		end := i + batchSize
		if end > len(res.Restaurants) {
			end = len(res.Restaurants)
		}
		key := fmt.Sprintf("batch-%d", i/batchSize)
		if cp.Done(key) {
			logger.Infof("skipping already-imported %s", key)
			continue
		}
		batchCtx, cancel := context.WithTimeout(ctx, time.Minute)
		n, err := repo.InsertMany(batchCtx, res.Restaurants[i:end])
		cancel()
		if err != nil {
			logger.Fatalf("failed to import rows %d-%d: %v", i+1, end, err)
		}
		if err := cp.MarkDone(key); err != nil {
			logger.Fatalf("failed to checkpoint %s: %v", key, err)
		}
		imported += n
		logger.Infof("imported restaurants %d to %d", i+1, end)
	}

	logger.Infof("successfully imported %d restaurants", imported)
}

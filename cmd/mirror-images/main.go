package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/halalfood/halalfood/backend/api/internal/config"
	"github.com/halalfood/halalfood/backend/api/internal/database"
	"github.com/halalfood/halalfood/backend/api/internal/importer"
	"github.com/halalfood/halalfood/backend/api/internal/restaurant"
	"github.com/halalfood/halalfood/backend/api/internal/storage"
	"github.com/halalfood/halalfood/backend/api/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// Mirrors listing photos into the configured object-storage bucket so the
// frontend never hot-links third-party image hosts. Resumable: completed
// restaurant ids land in a checkpoint ledger and are skipped on rerun.
func main() {
	var (
		checkpoint = flag.String("checkpoint", "mirror-images.checkpoint", "checkpoint ledger path")
		timeout    = flag.Duration("timeout", 30*time.Second, "per-image download timeout")
	)
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	store, err := storage.NewImageStore(storage.LoadImageStoreConfig())
	if err != nil {
		logger.Fatalf("failed to init image store: %v", err)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	cp, err := importer.OpenCheckpoint(*checkpoint)
	if err != nil {
		logger.Fatalf("failed to open checkpoint: %v", err)
	}
	defer cp.Close()
	logger.Infof("resuming with %d restaurants already mirrored", cp.Count())

	col := client.Database(cfg.MongoDB.Database).Collection("restaurants")
	cur, err := col.Find(ctx, bson.M{"photo": bson.M{"$nin": bson.A{"", nil}}})
	if err != nil {
		logger.Fatalf("failed to list restaurants: %v", err)
	}
	defer cur.Close(ctx)

	httpClient := &http.Client{Timeout: *timeout}
	mirrored, failed := 0, 0
	for cur.Next(ctx) {
		var r restaurant.Restaurant
		if err := cur.Decode(&r); err != nil {
			logger.Fatalf("failed to decode restaurant: %v", err)
		}
		id := r.ID.Hex()
		if cp.Done(id) {
			continue
		}
		if err := mirrorPhoto(ctx, httpClient, store, &r); err != nil {
			logger.Warnf("failed to mirror photo for %s (%s): %v", r.Name, id, err)
			failed++
			continue
		}
		if err := cp.MarkDone(id); err != nil {
			logger.Fatalf("failed to checkpoint %s: %v", id, err)
		}
		mirrored++
	}
	if err := cur.Err(); err != nil {
		logger.Fatalf("cursor error: %v", err)
	}
	logger.Infof("mirrored %d photos, %d failures", mirrored, failed)
}

func mirrorPhoto(ctx context.Context, httpClient *http.Client, store *storage.ImageStore, r *restaurant.Restaurant) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Photo, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: status %d", r.Photo, resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := "photos/" + r.ID.Hex()
	return store.Upload(ctx, key, resp.Body, resp.ContentLength, contentType)
}

// Command credlensd is the hosted Credlens scoring service. It serves the
// compute endpoints for the three engines, graph upload and fetch, and the
// admin configuration surface, plus a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/credlens/credlens/internal/api"
	"github.com/credlens/credlens/internal/configstore"
	"github.com/credlens/credlens/internal/graphstore"
	"github.com/credlens/credlens/internal/platform"
	"github.com/credlens/credlens/pkg/config"
)

func main() {
	cfgPath := envOrDefault("CREDLENS_CONFIG", "credlens.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Env overrides for containerized deploys.
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Server.DatabaseURL = v
	}
	if v := os.Getenv("CREDLENS_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres is optional: without it the config store is in-memory and
	// graph metadata is not recorded.
	var db *sql.DB
	if cfg.Server.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.Server.DatabaseURL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("ping database: %v", err)
		}
		if err := platform.AutoMigrate(db); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
	}

	var store *configstore.Store
	if db != nil {
		store, err = configstore.NewStoreWithDB(ctx, db)
	} else {
		store, err = configstore.NewStore(&cfg.Scoring)
	}
	if err != nil {
		log.Fatalf("config store: %v", err)
	}

	storage, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("graph storage: %v", err)
	}

	handler := api.NewHandler(db, store, storage, nil)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	// Health stays open; everything else requires the API key when one is set.
	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", healthHandler(db))
	root.Handle("/", api.APIKeyAuth(cfg.Server.APIKey)(mux))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: api.CORS(root),
	}

	go func() {
		log.Printf("starting credlensd on :%s (storage=%s)", cfg.Server.Port, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newStorage(ctx context.Context, sc config.StorageConfig) (graphstore.StorageClient, error) {
	switch sc.Backend {
	case "s3":
		return graphstore.NewS3Storage(ctx, graphstore.S3Config{
			Bucket:    sc.Bucket,
			Region:    sc.S3Region,
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
	case "gcs":
		return graphstore.NewGCSStorage(ctx, sc.Bucket)
	default:
		return graphstore.NewLocalStorage(sc.LocalPath), nil
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

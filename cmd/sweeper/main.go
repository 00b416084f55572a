package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aquatrack/backend-go/internal/config"
	"github.com/aquatrack/backend-go/internal/repository/postgres"
	"github.com/aquatrack/backend-go/internal/service"
	"github.com/aquatrack/backend-go/internal/storage"
	"github.com/aquatrack/backend-go/pkg/logger"
	"github.com/gorilla/mux"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// sweeper deletes expired delivery photos outside the API server, for
// deployments where the public cleanup endpoint is not reachable by a
// scheduler.

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func buildService(c *cli.Context) (*service.DeliveryService, func(), error) {
	db, err := postgres.Open(c.String("db-url"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	cfg := config.Load()
	images, err := storage.NewMinioStore(c.Context, cfg.Images)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to image store: %w", err)
	}

	repo := postgres.NewDeliveryRepository(db)
	return service.NewDeliveryService(repo, images), func() { db.Close() }, nil
}

func runOnce(c *cli.Context) error {
	svc, cleanup, err := buildService(c)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.Sweep(c.Context, time.Now())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	logger.Log.Info().
		Int("checked", result.Checked).
		Int("deleted", result.Deleted).
		Int("errors", len(result.Errors)).
		Msg("sweep finished")
	return nil
}

func runWatch(c *cli.Context) error {
	svc, cleanup, err := buildService(c)
	if err != nil {
		return err
	}
	defer cleanup()

	interval := c.Duration("interval")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Log.Info().Dur("interval", interval).Msg("sweeper watching")
	for {
		if _, err := svc.Sweep(c.Context, time.Now()); err != nil {
			logger.Log.Error().Err(err).Msg("sweep failed")
		}
		select {
		case <-c.Context.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func runServe(c *cli.Context) error {
	svc, cleanup, err := buildService(c)
	if err != nil {
		return err
	}
	defer cleanup()

	r := mux.NewRouter()
	r.HandleFunc("/sweep", func(w http.ResponseWriter, req *http.Request) {
		result, err := svc.Sweep(req.Context(), time.Now())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(result)
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", c.String("port"))
	logger.Log.Info().Str("addr", addr).Msg("sweeper serving")
	return http.ListenAndServe(addr, r)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "sweeper",
		Usage: "Delete expired delivery photos and their records",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run a single sweep and exit",
				Flags:  []cli.Flag{newDBURLFlag()},
				Action: runOnce,
			},
			{
				Name:  "watch",
				Usage: "Sweep repeatedly on an interval",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "Time between sweeps",
						Value: time.Hour,
					},
				},
				Action: runWatch,
			},
			{
				Name:  "serve",
				Usage: "Expose the sweep as an HTTP trigger",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "port",
						Usage:   "Port to listen on",
						Value:   "8090",
						EnvVars: []string{"SWEEPER_PORT"},
					},
				},
				Action: runServe,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("sweeper exited with error")
	}
}

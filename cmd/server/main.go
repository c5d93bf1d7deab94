/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load the tax table (built-in or from file)
  3. Initialize SQLite store and response cache
  4. Create API handler and router
  5. Start the history retention scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port                 HTTP server port (default: 8080)
  -db                   SQLite database path (default: payroll.db)
                        Use ":memory:" for in-memory database
  -tax-table            JSON or YAML tax table file (default: built-in table)
  -redis                Redis address for the response cache (default: in-process)
  -cache-ttl            Cached response lifetime (default: 24h)
  -cache-size           Entries kept by the in-process cache
  -history-retention    Age after which history is pruned, 0 keeps it forever
  -scheduler-interval   How often the retention sweep runs

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler, close cache and database
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/payroll.db"

  # Run against next year's table with a shared cache
  ./server -tax-table=./tables/2026.yaml -redis=localhost:6379

SEE ALSO:
  - api/server.go: Router configuration
  - factory/taxtable.go: Tax table file format
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/cache"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/tax"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "payroll.db", "SQLite database path")
	tablePath := flag.String("tax-table", "", "Tax table file (.json, .yaml); built-in table when empty")
	redisAddr := flag.String("redis", "", "Redis address for the response cache; in-process cache when empty")
	cacheTTL := flag.Duration("cache-ttl", cache.DefaultTTL, "Cached response lifetime")
	cacheSize := flag.Int("cache-size", cache.DefaultMaxEntries, "Entries kept by the in-process cache")
	retention := flag.Duration("history-retention", api.DefaultRetention, "Prune history older than this (0 keeps everything)")
	interval := flag.Duration("scheduler-interval", time.Hour, "History retention sweep interval")
	flag.Parse()

	// Tax table
	table := tax.Current()
	if *tablePath != "" {
		loaded, err := factory.NewTaxTableFactory().Load(*tablePath)
		if err != nil {
			log.Fatalf("Failed to load tax table: %v", err)
		}
		table = loaded
	}
	log.Printf("[Server] Using tax table for %d", table.Year)

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Response cache
	var responses cache.Repository
	if *redisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		responses, err = cache.NewRedisCache(ctx, *redisAddr, *cacheTTL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		log.Printf("[Server] Caching responses in redis at %s", *redisAddr)
	} else {
		responses = cache.NewMemoryCache(*cacheTTL, *cacheSize)
	}
	defer responses.Close()

	// Initialize handler
	handler, err := api.NewHandler(store, table, responses)
	if err != nil {
		log.Fatalf("Failed to initialize handler: %v", err)
	}

	// Create router
	router := api.NewRouter(handler)

	// History retention
	scheduler := api.NewRetentionScheduler(store)
	scheduler.Retention = *retention
	scheduler.CheckInterval = *interval
	scheduler.Start()
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("[Server] Starting on http://localhost:%d", *port)
		log.Printf("[Server] API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Forced to shutdown: %v", err)
	}

	log.Println("[Server] Stopped")
}

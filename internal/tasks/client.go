package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikestefanello/backlite"
)

// Client runs backlite queues over their own SQLite file, next to the
// catalog database.
type Client struct {
	client *backlite.Client
	db     *sql.DB
	config Config

	mu      sync.Mutex
	started bool
}

// TasksDatabasePath maps ./wypozyczalnia.db to ./wypozyczalnia-tasks.db.
func TasksDatabasePath(catalogPath string) string {
	ext := filepath.Ext(catalogPath)
	return strings.TrimSuffix(catalogPath, ext) + "-tasks" + ext
}

func NewClient(catalogPath string, cfg Config) (*Client, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	db, err := sql.Open("sqlite3", TasksDatabasePath(catalogPath)+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tasks database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Workers + 2)
	db.SetConnMaxLifetime(time.Hour)

	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              db,
		NumWorkers:      cfg.Workers,
		ReleaseAfter:    cfg.ReleaseAfter,
		CleanupInterval: cfg.CleanupInterval,
		Logger:          stdLogger{},
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create task client: %w", err)
	}

	if err := client.Install(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install task schema: %w", err)
	}

	return &Client{client: client, db: db, config: cfg}, nil
}

// Register must be called before Start.
func (c *Client) Register(queues ...backlite.Queue) {
	for _, q := range queues {
		c.client.Register(q)
	}
}

// Start launches the workers and returns immediately.
func (c *Client) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true

	log.Printf("Task queue started with %d workers", c.config.Workers)
	c.client.Start(ctx)
}

// Stop waits for running tasks until ctx expires. It reports whether all
// workers finished in time.
func (c *Client) Stop(ctx context.Context) bool {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return true
	}

	ok := c.client.Stop(ctx)
	if ok {
		log.Println("Task queue stopped")
	} else {
		log.Println("Task queue stopped before all tasks completed")
	}
	return ok
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) Add(tasks ...backlite.Task) *backlite.TaskAddOp {
	return c.client.Add(tasks...)
}

type stdLogger struct{}

func (stdLogger) Info(message string, params ...any) {
	log.Println(formatParams("[TASK] "+message, params))
}

func (stdLogger) Error(message string, params ...any) {
	log.Println(formatParams("[TASK ERROR] "+message, params))
}

// formatParams renders backlite's key/value pairs as key=value.
func formatParams(message string, params []any) string {
	var b strings.Builder
	b.WriteString(message)
	for i := 0; i+1 < len(params); i += 2 {
		fmt.Fprintf(&b, " %v=%v", params[i], params[i+1])
	}
	if len(params)%2 == 1 {
		fmt.Fprintf(&b, " %v", params[len(params)-1])
	}
	return b.String()
}

package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"pharmacy-backend/pkg/response"

	"github.com/redis/go-redis/v9"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

const checkTimeout = 5 * time.Second

type Checker struct {
	db    *sql.DB
	redis *redis.Client
}

// NewChecker accepts nil dependencies; they are then left out of the report.
func NewChecker(db *sql.DB, redis *redis.Client) *Checker {
	return &Checker{db: db, redis: redis}
}

type Status struct {
	Status       string                `json:"status"`
	Timestamp    time.Time             `json:"timestamp"`
	Dependencies map[string]Dependency `json:"dependencies,omitempty"`
}

type Dependency struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

func (c *Checker) Check(ctx context.Context) Status {
	status := Status{
		Status:       StatusHealthy,
		Timestamp:    time.Now().UTC(),
		Dependencies: make(map[string]Dependency),
	}

	if c.db != nil {
		status.Dependencies["database"] = probe(func() error { return c.db.PingContext(ctx) })
	}
	if c.redis != nil {
		status.Dependencies["redis"] = probe(func() error { return c.redis.Ping(ctx).Err() })
	}

	for _, dep := range status.Dependencies {
		if dep.Status != StatusHealthy {
			status.Status = StatusUnhealthy
		}
	}

	return status
}

func probe(ping func() error) Dependency {
	start := time.Now()
	err := ping()
	dep := Dependency{
		Status:    StatusHealthy,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		dep.Status = StatusUnhealthy
		dep.Message = err.Error()
	}
	return dep
}

// Handler answers 200 when every dependency responds, 503 otherwise.
func (c *Checker) Handler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	status := c.Check(ctx)
	code := http.StatusOK
	if status.Status != StatusHealthy {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, code, status)
}

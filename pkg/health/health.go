package health

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robert-bryson/rsmb.tv/flightdata"
	"github.com/robert-bryson/rsmb.tv/pkg/buildinfo"
)

// Status represents the health status of a component
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Check represents a single health check
type Check struct {
	Name      string            `json:"name"`
	Status    Status            `json:"status"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
}

// Report represents the overall health of the application
type Report struct {
	Status    Status           `json:"status"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    time.Duration    `json:"uptime"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// DatasetChecker verifies the flight dataset is loaded.
type DatasetChecker struct {
	Store *flightdata.Store
	Name  string
}

func (c *DatasetChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:      c.Name,
		Timestamp: start,
		Details:   make(map[string]string),
	}

	if !c.Store.Loaded() {
		check.Status = StatusDown
		check.Message = "dataset not loaded"
		check.Duration = time.Since(start)
		return check
	}

	airports, flights, visited := c.Store.Counts()
	check.Status = StatusUp
	check.Details["airports"] = fmt.Sprintf("%d", airports)
	check.Details["flights"] = fmt.Sprintf("%d", flights)
	check.Details["visited_airports"] = fmt.Sprintf("%d", visited)
	check.Duration = time.Since(start)
	return check
}

// RedisChecker checks Redis connectivity.
type RedisChecker struct {
	Client *redis.Client
	Name   string
}

func (c *RedisChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:      c.Name,
		Timestamp: start,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.Client.Ping(pingCtx).Err(); err != nil {
		check.Status = StatusDown
		check.Message = err.Error()
	} else {
		check.Status = StatusUp
	}
	check.Duration = time.Since(start)
	return check
}

// Service runs the configured checkers and assembles a report.
type Service struct {
	checkers []Checker
	started  time.Time
}

// NewService creates a health service from the given checkers.
func NewService(checkers ...Checker) *Service {
	return &Service{
		checkers: checkers,
		started:  time.Now(),
	}
}

// Report runs every checker; the overall status is down if any check is down.
func (s *Service) Report(ctx context.Context) Report {
	report := Report{
		Status:    StatusUp,
		Version:   buildinfo.Version,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check),
		Uptime:    time.Since(s.started),
	}

	for _, checker := range s.checkers {
		check := checker.Check(ctx)
		report.Checks[check.Name] = check
		if check.Status == StatusDown {
			report.Status = StatusDown
		}
	}
	return report
}

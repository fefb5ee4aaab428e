package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Counter reports the number of stored records of one kind.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Service holds runtime context for monitoring and reporting.
type Service struct {
	startedAt time.Time
	db        *sql.DB
	todos     Counter
	users     Counter
}

type Snapshot struct {
	TimestampUTC       string   `json:"timestamp_utc"`
	UptimeSeconds      int64    `json:"uptime_seconds"`
	DBStatus           string   `json:"db_status"`
	HTTPActiveRequests int64    `json:"http_active_requests"`
	HTTPTotalRequests  uint64   `json:"http_total_requests"`
	HTTPFailedRequests uint64   `json:"http_failed_requests"`
	DBOpenConnections  int      `json:"db_open_connections"`
	DBInUseConnections int      `json:"db_in_use_connections"`
	DBWaitCount        int64    `json:"db_wait_count"`
	Goroutines         int      `json:"goroutines"`
	GoMemoryAllocBytes uint64   `json:"go_memory_alloc_bytes"`
	GoHeapInUseBytes   uint64   `json:"go_heap_in_use_bytes"`
	GoGCCount          uint32   `json:"go_gc_count"`
	TodosTotal         int64    `json:"todos_total"`
	UsersTotal         int64    `json:"users_total"`
	CountErrors        []string `json:"count_errors,omitempty"`
}

func NewService(startedAt time.Time, db *sql.DB, todos, users Counter) *Service {
	return &Service{startedAt: startedAt, db: db, todos: todos, users: users}
}

func (s *Service) dbState(ctx context.Context) string {
	if err := s.db.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func (s *Service) StatusText(ctx context.Context) string {
	uptime := time.Since(s.startedAt).Round(time.Second)
	activeHTTP, totalHTTP, failedHTTP := getHTTPStats()

	return strings.Join([]string{
		"Todo API Status",
		fmt.Sprintf("Uptime: %s", uptime),
		fmt.Sprintf("DB: %s", s.dbState(ctx)),
		fmt.Sprintf("HTTP active requests: %d", activeHTTP),
		fmt.Sprintf("HTTP total requests: %d", totalHTTP),
		fmt.Sprintf("HTTP failed requests: %d", failedHTTP),
		fmt.Sprintf("Go goroutines: %d", runtime.NumGoroutine()),
	}, "\n")
}

func (s *Service) ConnectionsText() string {
	stats := s.db.Stats()

	return strings.Join([]string{
		"Todo API Connections",
		fmt.Sprintf("DB MaxOpenConnections: %d", stats.MaxOpenConnections),
		fmt.Sprintf("DB OpenConnections: %d", stats.OpenConnections),
		fmt.Sprintf("DB InUse: %d", stats.InUse),
		fmt.Sprintf("DB Idle: %d", stats.Idle),
		fmt.Sprintf("DB WaitCount: %d", stats.WaitCount),
	}, "\n")
}

func (s *Service) RuntimeText() string {
	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	return strings.Join([]string{
		"Todo API Runtime",
		fmt.Sprintf("Go version: %s", runtime.Version()),
		fmt.Sprintf("CPU cores: %d", runtime.NumCPU()),
		fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()),
		fmt.Sprintf("Memory alloc: %s", formatBytes(int64(memory.Alloc))),
		fmt.Sprintf("Heap in use: %s", formatBytes(int64(memory.HeapInuse))),
		fmt.Sprintf("GC cycles: %d", memory.NumGC),
	}, "\n")
}

func (s *Service) ContentText(ctx context.Context) string {
	return strings.Join([]string{
		"Todo API Content",
		"Todos total: " + countText(ctx, s.todos),
		"Users total: " + countText(ctx, s.users),
	}, "\n")
}

func countText(ctx context.Context, counter Counter) string {
	total, err := counter.Count(ctx)
	if err != nil {
		return "error: " + err.Error()
	}
	return fmt.Sprintf("%d", total)
}

func (s *Service) AllText(ctx context.Context) string {
	return strings.Join([]string{
		s.StatusText(ctx),
		"",
		s.ConnectionsText(),
		"",
		s.RuntimeText(),
		"",
		s.ContentText(ctx),
	}, "\n")
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	stats := s.db.Stats()
	activeHTTP, totalHTTP, failedHTTP := getHTTPStats()

	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	snap := Snapshot{
		TimestampUTC:       time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds:      int64(time.Since(s.startedAt).Seconds()),
		DBStatus:           s.dbState(ctx),
		HTTPActiveRequests: activeHTTP,
		HTTPTotalRequests:  totalHTTP,
		HTTPFailedRequests: failedHTTP,
		DBOpenConnections:  stats.OpenConnections,
		DBInUseConnections: stats.InUse,
		DBWaitCount:        stats.WaitCount,
		Goroutines:         runtime.NumGoroutine(),
		GoMemoryAllocBytes: memory.Alloc,
		GoHeapInUseBytes:   memory.HeapInuse,
		GoGCCount:          memory.NumGC,
	}

	var err error
	if snap.TodosTotal, err = s.todos.Count(ctx); err != nil {
		snap.CountErrors = append(snap.CountErrors, "todos: "+err.Error())
	}
	if snap.UsersTotal, err = s.users.Count(ctx); err != nil {
		snap.CountErrors = append(snap.CountErrors, "users: "+err.Error())
	}

	return snap
}

func formatBytes(value int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(value)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", value, units[unit])
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}

package trace

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Tracer provides compilation tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	logger  zerolog.Logger
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer. Filters are glob patterns over
// op-code names (e.g. "PUSH_*"); none means trace every instruction.
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		logger:  zerolog.New(writer).With().Timestamp().Str("component", "ocp-trace").Logger(),
	}
}

// InitLogger initializes the global tracer on an existing logger
func InitLogger(enabled bool, filters []string, logger zerolog.Logger) {
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		logger:  logger,
	}
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if an op-code name matches any of the filter patterns
func (t *Tracer) matchesFilter(opName string) bool {
	if len(t.filters) == 0 {
		return true
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, opName); matched {
			return true
		}
	}
	return false
}

// Emit logs an appended instruction
func (t *Tracer) Emit(ip int, opName string, arg int, line int) {
	if !t.enabled || !t.matchesFilter(opName) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Debug().
		Int("ip", ip).
		Str("op", opName).
		Int("arg", arg).
		Int("line", line).
		Msg("emit")
}

// Failure logs a compile error
func (t *Tracer) Failure(ip int, err error) {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Debug().Int("ip", ip).Err(err).Msg("compile failed")
}

// Emit logs via the global tracer
func Emit(ip int, opName string, arg int, line int) {
	if globalTracer != nil {
		globalTracer.Emit(ip, opName, arg, line)
	}
}

// Failure logs via the global tracer
func Failure(ip int, err error) {
	if globalTracer != nil {
		globalTracer.Failure(ip, err)
	}
}

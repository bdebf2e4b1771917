package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/radio-control/cmexport/internal/cmdoc"
)

// FileName is the audit log file inside the audit directory.
const FileName = "audit.jsonl"

// Result codes.
const (
	CodeSuccess     = "SUCCESS"
	CodeParseError  = "PARSE_ERROR"
	CodeIOError     = "IO_ERROR"
	CodeConfigError = "CONFIG_ERROR"
	CodeError       = "ERROR"
)

// ErrConfig marks configuration failures for code mapping.
var ErrConfig = errors.New("CONFIG_ERROR")

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	Timestamp        time.Time `json:"ts"`
	RunID            string    `json:"runId"`
	User             string    `json:"user"`
	Action           string    `json:"action"`
	Input            string    `json:"input"`
	Outcome          string    `json:"outcome"`
	Code             string    `json:"code"`
	Cells            int       `json:"cells"`
	Relations        int       `json:"relations"`
	DroppedRelations int       `json:"droppedRelations"`
	DurationMs       int64     `json:"durationMs"`
	Error            string    `json:"error,omitempty"`
}

// Run describes a finished export run.
type Run struct {
	ID               string
	Action           string
	Input            string
	Cells            int
	Relations        int
	DroppedRelations int
	Duration         time.Duration
}

// Options controls the audit file location and rotation.
type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger implements the audit logging functionality.
type Logger struct {
	mu       sync.Mutex
	filePath string
	out      *lumberjack.Logger
}

// NewLogger creates a new audit logger.
func NewLogger(opts Options) (*Logger, error) {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filePath := filepath.Join(opts.Dir, FileName)

	// lumberjack opens lazily; open once here so permission problems surface at startup.
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close audit log file: %w", err)
	}

	return &Logger{
		filePath: filePath,
		out: &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		},
	}, nil
}

// LogRun logs an audit record for an export run. err is the run's failure, if any.
func (l *Logger) LogRun(ctx context.Context, run Run, err error) {
	entry := AuditEntry{
		Timestamp:        time.Now().UTC(),
		RunID:            run.ID,
		User:             userFromContext(ctx),
		Action:           run.Action,
		Input:            run.Input,
		Outcome:          "SUCCESS",
		Code:             CodeFromError(err),
		Cells:            run.Cells,
		Relations:        run.Relations,
		DroppedRelations: run.DroppedRelations,
		DurationMs:       run.Duration.Milliseconds(),
	}
	if err != nil {
		entry.Outcome = "FAILED"
		entry.Error = err.Error()
	}

	l.writeEntry(entry)
}

// writeEntry writes an audit entry to the log file.
func (l *Logger) writeEntry(entry AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil {
		fmt.Fprintf(os.Stderr, "Audit logger closed, dropping entry for run %s\n", entry.RunID)
		return
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal audit entry: %v\n", err)
		return
	}

	if _, err := l.out.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write audit entry: %v\n", err)
	}
}

// CodeFromError maps a run error to a result code.
func CodeFromError(err error) string {
	if err == nil {
		return CodeSuccess
	}

	// A file that cannot be read is an I/O failure even though the parser reports it.
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var perr *cmdoc.ParseError
	switch {
	case errors.Is(err, ErrConfig):
		return CodeConfigError
	case errors.As(err, &pathErr), errors.As(err, &linkErr):
		return CodeIOError
	case errors.As(err, &perr):
		return CodeParseError
	}
	return CodeError
}

type userKey struct{}

// WithUser attaches the acting user to ctx.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// userFromContext returns the user set by WithUser, then $USER, then "unknown".
func userFromContext(ctx context.Context) string {
	if ctx != nil {
		if user, ok := ctx.Value(userKey{}).(string); ok && user != "" {
			return user
		}
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}

// Close closes the audit logger and its file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out != nil {
		err := l.out.Close()
		l.out = nil
		return err
	}
	return nil
}

// GetFilePath returns the path to the audit log file.
func (l *Logger) GetFilePath() string {
	return l.filePath
}

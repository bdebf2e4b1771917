// Package main implements the cmexport entry point: one bulk CM export file in,
// cell and neighbor relation CSV tables out.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/user"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/radio-control/cmexport/internal/audit"
	"github.com/radio-control/cmexport/internal/config"
	"github.com/radio-control/cmexport/internal/pipeline"
)

const Version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting cmexport v%s", Version)

	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(os.Args) > 1 {
		cfg.Input = os.Args[1]
	}
	log.Println("Configuration loaded successfully")

	// Step 2: Tee process log into a rotating file
	var logFile *lumberjack.Logger
	if cfg.Log.File != "" {
		logFile = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
		log.Printf("Logging to %s", cfg.Log.File)
	}

	// Step 3: Initialize audit logger
	var auditLogger *audit.Logger
	if cfg.Audit.Enabled {
		auditLogger, err = audit.NewLogger(audit.Options{
			Dir:        cfg.Audit.Dir,
			MaxSizeMB:  cfg.Audit.MaxSizeMB,
			MaxBackups: cfg.Audit.MaxBackups,
			MaxAgeDays: cfg.Audit.MaxAgeDays,
			Compress:   cfg.Audit.Compress,
		})
		if err != nil {
			log.Printf("Failed to initialize audit logger: %v", err)
			closeLog(logFile)
			os.Exit(1)
		}
		log.Printf("Audit log at %s", auditLogger.GetFilePath())
	}

	// Step 4: Run the export
	ctx := audit.WithUser(context.Background(), currentUser())
	summary, runErr := pipeline.Run(ctx, cfg, auditLogger)

	// Step 5: Close audit logger
	if auditLogger != nil {
		if err := auditLogger.Close(); err != nil {
			log.Printf("Error closing audit logger: %v", err)
		}
	}

	if runErr != nil {
		log.Printf("Export %s failed: %v", summary.RunID, runErr)
		closeLog(logFile)
		os.Exit(1)
	}

	if summary.ManifestPath != "" {
		log.Printf("Manifest written to %s", summary.ManifestPath)
	}
	if summary.SignedManifestPath != "" {
		log.Printf("Signed manifest written to %s", summary.SignedManifestPath)
	}
	log.Printf("Cells: %d, relations: %d", summary.Stats.Cells, summary.Stats.Relations)
	log.Println("Exported both cell and neighbor data to CSV")
	closeLog(logFile)
}

// currentUser names the account running the export, empty when unknown.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}

// closeLog restores stderr logging and closes the rotating log file.
func closeLog(logFile *lumberjack.Logger) {
	if logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	if err := logFile.Close(); err != nil {
		log.Printf("Error closing log file: %v", err)
	}
}

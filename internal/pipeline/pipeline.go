package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/radio-control/cmexport/internal/audit"
	"github.com/radio-control/cmexport/internal/cmdoc"
	"github.com/radio-control/cmexport/internal/config"
	"github.com/radio-control/cmexport/internal/export"
	"github.com/radio-control/cmexport/internal/extract"
)

// ActionExport is the audit action recorded for a run.
const ActionExport = "export"

// Summary describes a finished run.
type Summary struct {
	RunID string
	Input string
	Stats extract.Stats
	Files []export.File

	// ManifestPath and SignedManifestPath are empty when not written.
	ManifestPath       string
	SignedManifestPath string

	// Recovered is set when the input was truncated or malformed past the root.
	Recovered error
}

// Run executes one export with cfg. auditLog may be nil.
func Run(ctx context.Context, cfg *config.Config, auditLog *audit.Logger) (summary *Summary, err error) {
	start := time.Now()
	summary = &Summary{RunID: uuid.NewString(), Input: cfg.Input}

	defer func() {
		if auditLog == nil {
			return
		}
		auditLog.LogRun(ctx, audit.Run{
			ID:               summary.RunID,
			Action:           ActionExport,
			Input:            summary.Input,
			Cells:            summary.Stats.Cells,
			Relations:        summary.Stats.Relations,
			DroppedRelations: summary.Stats.DroppedRelations,
			Duration:         time.Since(start),
		}, err)
	}()

	if err := cfg.Validate(); err != nil {
		return summary, fmt.Errorf("%w: %w", audit.ErrConfig, err)
	}

	log.Printf("Run %s: loading %s", summary.RunID, cfg.Input)
	doc, err := cmdoc.ParseFile(cfg.Input)
	if err != nil {
		return summary, err
	}
	if doc.Recovered != nil {
		summary.Recovered = doc.Recovered
		log.Printf("Warning: input ended early, using the part read so far: %v", doc.Recovered)
	}

	res := extract.Extract(doc)
	summary.Stats = res.Stats
	log.Printf("Indexed %d sector carriers across %d containers", res.Stats.Carriers, res.Stats.Containers)
	log.Printf("Walked %d contexts: %d cell rows", res.Stats.Contexts, res.Stats.Cells)
	log.Printf("Relations: %d rows, %d dropped without a home cell", res.Stats.Relations, res.Stats.DroppedRelations)

	sink := export.NewSink(export.Options{
		Dir:           cfg.Output.Dir,
		CellsFile:     cfg.Output.CellsFile,
		RelationsFile: cfg.Output.RelationsFile,
		Delimiter:     cfg.Output.DelimiterRune(),
	})
	files, err := sink.Write(res)
	if err != nil {
		return summary, err
	}
	summary.Files = files
	for _, f := range files {
		log.Printf("Wrote %s (%d rows)", f.Path, f.Rows)
	}

	if !cfg.Manifest.Enabled && cfg.Manifest.SigningKey == "" {
		return summary, nil
	}

	m := &export.Manifest{
		RunID:           summary.RunID,
		Input:           cfg.Input,
		InputSHA256:     doc.Digest,
		InputBytes:      doc.Size,
		GeneratedAt:     time.Now().UTC().Truncate(time.Second),
		Files:           files,
		Stats:           res.Stats,
		CellsPerContext: res.CellsPerContext(),
	}
	if doc.Recovered != nil {
		m.Recovered = doc.Recovered.Error()
	}

	if cfg.Manifest.Enabled {
		summary.ManifestPath, err = export.WriteManifest(cfg.Output.Dir, m)
		if err != nil {
			return summary, err
		}
	}
	if cfg.Manifest.SigningKey != "" {
		summary.SignedManifestPath, err = export.WriteSignedManifest(cfg.Output.Dir, m, []byte(cfg.Manifest.SigningKey))
		if err != nil {
			return summary, err
		}
	}

	return summary, nil
}

package recolor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Brannigan123/blessed-icon-template/extract"
	"github.com/Brannigan123/blessed-icon-template/palette"
)

// Mapping is one source icon tree and the destination tree it is rewritten into.
type Mapping struct {
	Source string
	Dest   string
	// Fresh clears Dest before anything is written, see ResetDir.
	Fresh bool
}

// Report summarizes one mapping. Err is set when the mapping could not be processed at all.
type Report struct {
	Mapping
	Colors  int // distinct literals matched
	Invalid int // literals that could not be parsed
	Skipped int // files the extractor could not scan
	Binary  int // binary files left out of the destination
	Written int
	Errors  int // files that could not be rewritten
	Err     error
}

func (r Report) Failed() bool {
	return r.Err != nil || r.Errors > 0
}

// Recolorer runs extraction, matching and rewriting for mappings sharing one palette.
type Recolorer struct {
	Index       *palette.LabIndex
	Extractor   extract.Extractor
	Placeholder string
	Exts        []string
	Logger      *slog.Logger
}

func (rc *Recolorer) logger() *slog.Logger {
	if rc.Logger != nil {
		return rc.Logger
	}
	return slog.Default()
}

func (rc *Recolorer) Run(m Mapping) Report {
	logger := rc.logger().With("source", m.Source, "dest", m.Dest)
	report := Report{Mapping: m}

	if rc.Index == nil || rc.Index.Len() == 0 {
		report.Err = palette.ErrEmptyPalette
		logger.Error("nothing to match against", "error", report.Err)
		return report
	}

	if m.Fresh {
		if err := ResetDir(m.Dest, m.Source); err != nil {
			report.Err = err
			logger.Error("could not prepare destination", "error", err)
			return report
		}
	}

	ext := rc.Extractor
	if ext == nil {
		ext = &extract.Scanner{Exts: rc.exts(), Logger: logger}
	}

	found, err := ext.Extract(m.Source)
	if err != nil {
		report.Err = err
		logger.Error("could not extract colors", "error", err)
		return report
	}
	report.Skipped = found.Skipped

	subs, errs := Build(rc.Index, found.Literals)
	if subs == nil {
		report.Err = fmt.Errorf("could not match colors: %w", errs[0])
		logger.Error("could not match colors", "error", report.Err)
		return report
	}
	for _, err := range errs {
		logger.Warn("invalid color literal", "error", err)
	}
	report.Invalid = len(errs)
	report.Colors = subs.Len()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		for _, lit := range found.Literals {
			if name, ok := subs.Lookup(lit); ok {
				logger.Debug("matched color", "literal", lit, "name", name)
			}
		}
	}

	sub, err := Compile(subs, rc.Placeholder)
	if err != nil {
		report.Err = err
		logger.Error("could not prepare substitutions", "error", err)
		return report
	}

	stats, err := RewriteTree(m.Source, m.Dest, sub, RewriteOptions{Exts: rc.exts(), Logger: logger})
	report.Written, report.Errors, report.Binary = stats.Written, stats.Errors, stats.Skipped
	if err != nil {
		report.Err = err
		logger.Error("could not rewrite icons", "error", err)
		return report
	}

	logger.Info("stats", "colors", report.Colors, "written", report.Written, "errors", report.Errors,
		"skipped", report.Skipped, "binary", report.Binary, "invalid", report.Invalid)
	return report
}

func (rc *Recolorer) exts() []string {
	if len(rc.Exts) == 0 {
		return DefaultExts
	}
	return rc.Exts
}

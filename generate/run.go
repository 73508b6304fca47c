package generate

import (
	"fmt"
	"log/slog"

	"github.com/Brannigan123/blessed-icon-template/config"
	"github.com/Brannigan123/blessed-icon-template/extract"
	"github.com/Brannigan123/blessed-icon-template/palette"
	"github.com/Brannigan123/blessed-icon-template/parallel"
	"github.com/Brannigan123/blessed-icon-template/recolor"
	"github.com/Brannigan123/blessed-icon-template/theme"
)

// Summary of a whole run, one report per configured mapping in config order.
type Summary struct {
	Reports   []recolor.Report
	ThemeFile string
}

func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Reports {
		if r.Failed() {
			n++
		}
	}
	return n
}

type job struct {
	index   int
	rc      *recolor.Recolorer
	mapping recolor.Mapping
}

// Generate recolors every mapping of cfg and writes the theme descriptor. Every destination
// folder is cleared before its first mapping runs. Mappings writing to the same destination
// folder run one after the other in config order, so later sources win just like in a
// sequential run; distinct destinations are handed to worker. A failing
// palette or mapping never stops the others.
func Generate(cfg *config.Config, worker parallel.WorkerFunc, wait parallel.WaitFunc) (Summary, error) {
	var summary Summary
	var groups [][]job
	byDest := make(map[string]int)

	for _, t := range cfg.Templates {
		logger := slog.Default().With("palette", t.ColorRef)

		var rc *recolor.Recolorer
		pal, err := palette.Load(t.ColorRef)
		if err != nil {
			logger.Error("could not load palette", "error", err)
		} else {
			logger.Info("loaded palette", "colors", len(pal))
			rc = &recolor.Recolorer{
				Index:       palette.NewLabIndex(pal),
				Extractor:   newExtractor(cfg, logger),
				Placeholder: cfg.Placeholder,
				Exts:        cfg.Extensions,
				Logger:      logger,
			}
		}

		for _, fm := range t.FolderMappings {
			m := recolor.Mapping{Source: fm.Source, Dest: cfg.DestPath(fm.Dest)}
			idx := len(summary.Reports)
			summary.Reports = append(summary.Reports, recolor.Report{Mapping: m})

			if rc == nil {
				summary.Reports[idx].Err = fmt.Errorf("palette %q unavailable: %w", t.ColorRef, err)
				continue
			}

			g, ok := byDest[m.Dest]
			if !ok {
				g = len(groups)
				byDest[m.Dest] = g
				groups = append(groups, nil)
				// the first mapping of a destination starts it from scratch
				m.Fresh = true
			}
			groups[g] = append(groups[g], job{index: idx, rc: rc, mapping: m})
		}
	}

	for _, g := range groups {
		worker(func(jobs []job) func() {
			return func() {
				for _, j := range jobs {
					summary.Reports[j.index] = j.rc.Run(j.mapping)
				}
			}
		}(g))
	}
	wait(false)

	desc := theme.Descriptor{Name: cfg.ThemeName, Directories: cfg.Directories()}
	path, err := desc.WriteFile(cfg.OutputDir)
	if err != nil {
		slog.Error("could not write theme descriptor", "dir", cfg.OutputDir, "error", err)
		return summary, err
	}
	summary.ThemeFile = path

	var written, errCount int
	for _, r := range summary.Reports {
		written += r.Written
		errCount += r.Errors
	}
	failed := summary.Failed()
	slog.Info("stats", "mappings", len(summary.Reports), "failed", failed, "written", written,
		"errors", errCount, "theme", path)

	if failed > 0 {
		return summary, fmt.Errorf("%d of %d mappings failed", failed, len(summary.Reports))
	}
	return summary, nil
}

func newExtractor(cfg *config.Config, logger *slog.Logger) extract.Extractor {
	if cfg.Extractor == config.ExtractorGrep {
		return &extract.Grep{Exts: cfg.Extensions, Logger: logger}
	}
	return &extract.Scanner{Exts: cfg.Extensions, Logger: logger}
}

package generate

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/Brannigan123/blessed-icon-template/config"
	"github.com/Brannigan123/blessed-icon-template/parallel"
)

type CLICmd struct {
	Config    string `help:"Icon theme config file" default:"${config_path}" type:"path"`
	Output    string `help:"Output folder for the generated theme template, overrides output_dir" type:"path"`
	Extractor string `help:"Color extractor to use, overrides the config (scan, grep)"`
	Watch     bool   `help:"Regenerate whenever the config or a palette changes" default:"false"`

	cfg *config.Config `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *CLICmd) load() (*config.Config, error) {
	info, err := os.Stat(c.Config)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("not a file")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config path %q: %w", c.Config, err)
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Output != "" {
		if cfg.OutputDir, err = filepath.Abs(c.Output); err != nil {
			return nil, fmt.Errorf("invalid output path %q: %w", c.Output, err)
		}
	}
	if c.Extractor != "" {
		cfg.Extractor = c.Extractor
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Workers is the worker count requested by the loaded config, 1 before Validate.
func (c *CLICmd) Workers() int {
	if c.cfg == nil {
		return 1
	}
	return c.cfg.Workers
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	defer wait(true)

	if c.cfg == nil {
		cfg, err := c.load()
		if err != nil {
			return err
		}
		c.cfg = cfg
	}

	if !c.Watch {
		_, err := Generate(c.cfg, worker, wait)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(ctx, worker, wait)
}

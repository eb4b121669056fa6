package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
	"bookshelf/internal/logging"
)

type commandContext struct {
	configFlag   *string
	dataFileFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	log        *slog.Logger
}

func newCommandContext(configFlag, dataFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		dataFileFlag: dataFileFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		// Values already in the environment win over .env entries.
		_ = godotenv.Load()

		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.configPath, c.configExists = resolved, exists
		if c.dataFileFlag != nil && strings.TrimSpace(*c.dataFileFlag) != "" {
			expanded, err := config.ExpandPath(strings.TrimSpace(*c.dataFileFlag))
			if err != nil {
				c.configErr = fmt.Errorf("resolve data file: %w", err)
				return
			}
			cfg.Storage.DataFile = expanded
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg, logging.NewSessionID())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warn: unable to initialize logger: %v\n", err)
			logger = logging.NewNop()
		}
		c.log = logger
	})
	return c.log
}

// openStore loads the catalog named by the resolved configuration.
func (c *commandContext) openStore() (*catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.Storage.DataFile, c.logger()), nil
}

func (c *commandContext) colorize(w io.Writer) bool {
	mode := config.ColorAuto
	if cfg, err := c.ensureConfig(); err == nil {
		mode = cfg.Display.Color
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return shouldColorize(w)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.normalizeDisplay()
	return nil
}

func (c *Config) normalizeStorage() error {
	if value, ok := os.LookupEnv(DataFileEnv); ok && strings.TrimSpace(value) != "" {
		c.Storage.DataFile = strings.TrimSpace(value)
	}
	c.Storage.DataFile = strings.TrimSpace(c.Storage.DataFile)
	if c.Storage.DataFile == "" {
		c.Storage.DataFile = defaultDataFile
	}
	var err error
	if c.Storage.DataFile, err = expandPath(c.Storage.DataFile); err != nil {
		return fmt.Errorf("storage.data_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File == "" {
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultColor
	}
}

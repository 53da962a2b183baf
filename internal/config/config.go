// Package config provides configuration management for Dropdock.
// Configuration is a small CSV key/value file; all keys are optional and
// missing files yield defaults, so a fresh install needs no setup.
package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dropdock/dropdock/internal/constants"
)

// Config holds the user-tunable settings for the shelf.
type Config struct {
	// ShowHidden includes dot-files when listing folder contents.
	ShowHidden bool

	// SortLocale overrides the detected user locale for name sorting,
	// as a BCP 47 tag (e.g. "de", "sv-SE"). Empty means autodetect.
	SortLocale string

	// Window geometry.
	WindowWidth  int
	WindowHeight int
}

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		ShowHidden:   false,
		SortLocale:   "",
		WindowWidth:  constants.DefaultWindowWidth,
		WindowHeight: constants.DefaultWindowHeight,
	}
}

// Load loads configuration from a CSV file of key,value pairs.
// A missing file is not an error: defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read config CSV: %w", err)
	}

	for i, record := range records {
		if i == 0 && len(record) >= 2 && strings.EqualFold(record[0], "key") {
			// Skip header row
			continue
		}
		if len(record) < 2 {
			continue
		}

		key := strings.TrimSpace(strings.ToLower(record[0]))
		value := strings.TrimSpace(record[1])

		switch key {
		case "show_hidden":
			if v, err := strconv.ParseBool(value); err == nil {
				cfg.ShowHidden = v
			}
		case "sort_locale":
			cfg.SortLocale = value
		case "window_width":
			if v, err := strconv.Atoi(value); err == nil && v >= constants.MinWindowWidth {
				cfg.WindowWidth = v
			}
		case "window_height":
			if v, err := strconv.Atoi(value); err == nil && v >= constants.MinWindowHeight {
				cfg.WindowHeight = v
			}
		}
	}

	return cfg, nil
}

// Save writes the configuration to a CSV file, creating parent directories
// as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(parentDir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	records := [][]string{
		{"key", "value"},
		{"show_hidden", strconv.FormatBool(cfg.ShowHidden)},
		{"sort_locale", cfg.SortLocale},
		{"window_width", strconv.Itoa(cfg.WindowWidth)},
		{"window_height", strconv.Itoa(cfg.WindowHeight)},
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write config CSV: %w", err)
	}

	return nil
}

package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/language"

	"github.com/aki/mknote/internal/core/logger"
)

// ValidateConfig checks the values the schema cannot express
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	for _, p := range config.Ignore {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q", p)
		}
	}

	if config.Locale != "" {
		if _, err := language.Parse(config.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", config.Locale, err)
		}
	}

	if _, err := logger.ParseLevel(config.Log.Level); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(config.Log.Format); err != nil {
		return err
	}

	return nil
}

// LanguageTag returns the collation language, falling back to und.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

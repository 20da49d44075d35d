// Package config provides configuration management for the fluentql CLI.
//
// Configuration is layered: built-in defaults, then an optional
// fluentql.yaml file, then FLUENTQL_-prefixed environment variables, then
// explicitly set CLI flags.
package config

import (
	"github.com/leapstack-labs/fluentql/pkg/dialect"
)

// RenderOptions mirrors the compiler's rendering options.
type RenderOptions struct {
	AllCaps       bool  `koanf:"all_caps"`
	KeywordsCaps  bool  `koanf:"keywords_caps"`
	BreakLines    bool  `koanf:"break_lines"`
	Indent        bool  `koanf:"indent"`
	AbsoluteNames *bool `koanf:"absolute_names"`
}

// Config holds all CLI configuration options.
type Config struct {
	Dialect string        `koanf:"dialect"`
	Verbose bool          `koanf:"verbose"`
	Options RenderOptions `koanf:"options"`
}

// Default configuration values.
const (
	DefaultDialect = "ansi"
)

// DialectOptions converts the configured rendering options to compiler
// options.
func (c *Config) DialectOptions() []dialect.Option {
	var opts []dialect.Option
	if c.Options.AllCaps {
		opts = append(opts, dialect.WithAllCaps())
	}
	if c.Options.KeywordsCaps {
		opts = append(opts, dialect.WithKeywordsCaps())
	}
	if c.Options.BreakLines {
		opts = append(opts, dialect.WithBreakLineOnSections())
	}
	if c.Options.Indent {
		opts = append(opts, dialect.WithIndent())
	}
	if c.Options.AbsoluteNames != nil {
		opts = append(opts, dialect.WithAbsoluteColumnNames(*c.Options.AbsoluteNames))
	}
	return opts
}

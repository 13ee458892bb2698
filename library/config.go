package library

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// LoanPolicy fixes how many books a patron type may hold at once and how
// long a single loan (or renewal) runs.
type LoanPolicy struct {
	MaxBooks      int `yaml:"max_books" json:"max_books"`
	MaxBorrowDays int `yaml:"max_borrow_days" json:"max_borrow_days"`
}

// Config carries the tunable parts of the system. Everything has a built-in
// default so the zero-config path works.
type Config struct {
	LogLevel string                    `yaml:"log_level"`
	Policies map[PatronType]LoanPolicy `yaml:"policies"`
}

// DefaultConfig returns the stock loan policies.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Policies: map[PatronType]LoanPolicy{
			PatronStudent: {MaxBooks: 3, MaxBorrowDays: 14},
			PatronFaculty: {MaxBooks: 10, MaxBorrowDays: 30},
			PatronGeneral: {MaxBooks: 5, MaxBorrowDays: 21},
		},
	}
}

// LoadConfig reads a YAML config file, filling anything the file omits from
// the defaults. A missing file is not an error; it yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	for t, p := range file.Policies {
		base := cfg.Policies[t]
		if p.MaxBooks > 0 {
			base.MaxBooks = p.MaxBooks
		}
		if p.MaxBorrowDays > 0 {
			base.MaxBorrowDays = p.MaxBorrowDays
		}
		cfg.Policies[t] = base
	}
	return cfg, nil
}

// Policy returns the loan policy for a patron type, falling back to the
// GENERAL policy for unknown types.
func (c Config) Policy(t PatronType) LoanPolicy {
	if p, ok := c.Policies[t]; ok {
		return p
	}
	return c.Policies[PatronGeneral]
}

package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicies(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, LoanPolicy{MaxBooks: 3, MaxBorrowDays: 14}, cfg.Policy(PatronStudent))
	assert.Equal(t, LoanPolicy{MaxBooks: 10, MaxBorrowDays: 30}, cfg.Policy(PatronFaculty))
	assert.Equal(t, LoanPolicy{MaxBooks: 5, MaxBorrowDays: 21}, cfg.Policy(PatronGeneral))
}

func TestPolicyFallsBackToGeneral(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.Policy(PatronGeneral), cfg.Policy(PatronType("VISITOR")))
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	body := []byte("log_level: debug\npolicies:\n  STUDENT:\n    max_books: 2\n    max_borrow_days: 7\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, LoanPolicy{MaxBooks: 2, MaxBorrowDays: 7}, cfg.Policy(PatronStudent))
	// Types the file does not mention keep their defaults.
	assert.Equal(t, LoanPolicy{MaxBooks: 10, MaxBorrowDays: 30}, cfg.Policy(PatronFaculty))
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policies: [broken"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

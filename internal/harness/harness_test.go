package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datatrails/go-suffixstack/internal/obslog"
)

// TestRunAgreesWithOracle is spec §8's S6: a fixed seed makes the run
// reproducible, so a regression here always points at the same divergence.
func TestRunAgreesWithOracle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RandomCount = 2048
	cfg.RandomSeed = 42

	result, err := Run(cfg, obslog.Noop())
	require.NoError(t, err)
	require.Equal(t, cfg.RandomCount, result.Operations)
}

func TestRunIsDeterministicForASeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RandomCount = 512
	cfg.RandomSeed = 7

	r1, err := Run(cfg, obslog.Noop())
	require.NoError(t, err)
	r2, err := Run(cfg, obslog.Noop())
	require.NoError(t, err)
	require.Equal(t, r1.FinalSize, r2.FinalSize)
}

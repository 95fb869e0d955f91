package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCommand(t *testing.T) {
	resetFlags(t)
	arenaSize = 65536

	output, err := captureOutput(t, func() error {
		return runStats([]string{"alloc 100", "alloc 200", "free #1", "alloc 70000"})
	})
	require.NoError(t, err)

	for _, want := range []string{
		"Arena Statistics",
		"Region:        65,536 bytes",
		"Blocks:        3 (1 busy, 2 free)",
		"Busy:          216 bytes",
		"Free:          65,320 bytes",
		"Largest free:  65,188 bytes",
		"Allocations: 2 (1 failed)",
		"Releases:    1 (0 failed)",
		"Splits:      2",
	} {
		assert.Contains(t, output, want)
	}
	assert.NotContains(t, output, "#1 =", "ops run silently")
}

func TestStatsJSON(t *testing.T) {
	resetFlags(t)
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runStats([]string{"alloc 100", "alloc 200", "free #2"})
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &got), output)
	assert.EqualValues(t, 4096, got["region_size"])
	assert.EqualValues(t, 116, got["busy_bytes"])
	assert.EqualValues(t, 3980, got["free_bytes"])
	assert.EqualValues(t, 2, got["blocks"])

	ops, ok := got["ops"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, ops["coalesce_right"])
}

func TestStatsQuiet(t *testing.T) {
	resetFlags(t)
	quiet = true

	output, err := captureOutput(t, func() error {
		return runStats([]string{"alloc 1"})
	})
	require.NoError(t, err)
	assert.Empty(t, output)
}

package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSweep(t *testing.T, dir string, freqMHz int, content string) {
	t.Helper()
	sub := filepath.Join(dir, fmt.Sprintf("%dmhz", freqMHz))
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, ResultsFileName), []byte(content), 0644))
}

func TestReadResults(t *testing.T) {
	t.Run("ParsesRowsByHeaderName", func(t *testing.T) {
		dir := t.TempDir()
		writeSweep(t, dir, 1600, "RESOURCE,DURATION,TRANSITION\ngt/GT_TILE_0/ex_u0,100.5,busy\ngt/GT_TILE_0/ex_u1,50,idle\n")

		rows, err := ReadResults(filepath.Join(dir, "1600mhz", ResultsFileName))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "gt/GT_TILE_0/ex_u0", rows[0].Resource)
		assert.Equal(t, 100.5, rows[0].Duration)
		assert.Equal(t, "busy", rows[0].Transition)
	})

	t.Run("HeaderMatchingIsCaseInsensitive", func(t *testing.T) {
		dir := t.TempDir()
		writeSweep(t, dir, 600, "resource,Duration,transition\ngt/a,1,x\n")

		rows, err := ReadResults(filepath.Join(dir, "600mhz", ResultsFileName))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 1.0, rows[0].Duration)
	})

	t.Run("ColumnOrderDoesNotMatter", func(t *testing.T) {
		dir := t.TempDir()
		writeSweep(t, dir, 600, "TRANSITION,DURATION,RESOURCE\nidle,42,gt/b\n")

		rows, err := ReadResults(filepath.Join(dir, "600mhz", ResultsFileName))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "gt/b", rows[0].Resource)
		assert.Equal(t, 42.0, rows[0].Duration)
	})

	t.Run("SkipsNonNumericDurations", func(t *testing.T) {
		dir := t.TempDir()
		writeSweep(t, dir, 600, "RESOURCE,DURATION\ngt/a,abc\ngt/b,7\n")

		rows, err := ReadResults(filepath.Join(dir, "600mhz", ResultsFileName))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "gt/b", rows[0].Resource)
	})

	t.Run("MissingColumnsIsAnError", func(t *testing.T) {
		dir := t.TempDir()
		writeSweep(t, dir, 600, "NAME,TIME\ngt/a,1\n")

		_, err := ReadResults(filepath.Join(dir, "600mhz", ResultsFileName))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RESOURCE/DURATION")
	})
}

func TestLoadAll(t *testing.T) {
	t.Run("MissingFrequencyBecomesWarning", func(t *testing.T) {
		dir := t.TempDir()
		writeSweep(t, dir, 1600, "RESOURCE,DURATION\ngt/a,10\n")

		rowsByFreq, warnings := LoadAll(dir, []int{1600, 2000})
		assert.Contains(t, rowsByFreq, 1600)
		assert.NotContains(t, rowsByFreq, 2000)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "2000MHz")
	})

	t.Run("AllPresent", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range []int{600, 1000} {
			writeSweep(t, dir, f, "RESOURCE,DURATION\ngt/a,10\n")
		}

		rowsByFreq, warnings := LoadAll(dir, []int{600, 1000})
		assert.Empty(t, warnings)
		assert.Len(t, rowsByFreq, 2)
	})
}

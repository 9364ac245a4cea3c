package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-rebin/histogram"
	"github.com/cwbudde/algo-rebin/internal/config"
	"github.com/cwbudde/algo-rebin/internal/testutil"
)

func writeSource(t *testing.T, dir string, channels, cnts []int) string {
	t.Helper()

	h, err := histogram.New(channels, cnts)
	require.NoError(t, err)

	path := filepath.Join(dir, "in.dat")
	require.NoError(t, histogram.WriteFile(path, h, histogram.FormatSource))

	return path
}

func scenario(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()

	seed := uint64(1)
	cfg := config.Default()
	cfg.Input = writeSource(t, dir, []int{100, 101, 102, 103}, []int{10, 0, 0, 0})
	cfg.Output = filepath.Join(dir, "out.dat")
	cfg.ReferenceEnergy = 2.0
	cfg.TrueEnergy = 1.0
	cfg.NominalWidth = 1.0
	cfg.Bins = 4
	cfg.Seed = &seed

	return cfg
}

func TestRunHalfWidthScenario(t *testing.T) {
	cfg := scenario(t)
	log, hook := logtest.NewNullLogger()

	res, err := Run(cfg, log)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "100 10\n101 0\n102 0\n103 0\n", string(data))

	assert.Equal(t, 0.5, res.TrueWidth)
	assert.Equal(t, uint64(1), res.Seed)
	assert.Equal(t, 10, res.Input.Total)
	assert.Equal(t, 10, res.Output.Total)
	assert.InDelta(t, 10, res.Accumulated.Total, 1e-12)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "rebin configuration", entries[0].Message)
	assert.Equal(t, 0.5, entries[0].Data["true_width"])
	assert.Equal(t, cfg.Input, entries[0].Data["input"])
	assert.Equal(t, "rebin complete", entries[1].Message)
	assert.Equal(t, 10, entries[1].Data["output_total"])
	assert.Equal(t, 100, entries[1].Data["output_peak"])
}

func TestRunWithRow(t *testing.T) {
	cfg := scenario(t)
	cfg.WithRow = true
	log, _ := logtest.NewNullLogger()

	_, err := Run(cfg, log)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "0 100 10\n1 101 0\n2 102 0\n3 103 0\n", string(data))
}

func TestRunIdentity(t *testing.T) {
	dir := t.TempDir()
	src := testutil.DeterministicCounts(5, 2000, 128)

	cfg := config.Default()
	cfg.Input = writeSource(t, dir, testutil.Channels(1, len(src)), src)
	cfg.Output = filepath.Join(dir, "out.dat")
	cfg.ReferenceEnergy = 5.9
	cfg.TrueEnergy = 5.9
	cfg.Bins = len(src)

	log, _ := logtest.NewNullLogger()
	_, err := Run(cfg, log)
	require.NoError(t, err)

	out, err := histogram.ReadFile(cfg.Output, len(src), histogram.FormatOutput)
	require.NoError(t, err)
	assert.Equal(t, testutil.Channels(1, len(src)), out.Channels)
	assert.Equal(t, src, out.Counts)
}

func TestRunConfigErrorTouchesNoFile(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Input = filepath.Join(dir, "does-not-exist.dat")
	cfg.Output = filepath.Join(dir, "out.dat")
	cfg.ReferenceEnergy = 0
	cfg.TrueEnergy = 6.0

	log, hook := logtest.NewNullLogger()
	_, err := Run(cfg, log)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "output must not be created")
	assert.Empty(t, hook.AllEntries())
}

func TestRunShortInput(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Input = writeSource(t, dir, []int{100, 101}, []int{10, 0})
	cfg.Output = filepath.Join(dir, "out.dat")
	cfg.ReferenceEnergy = 2.0
	cfg.TrueEnergy = 1.0
	cfg.Bins = 4

	log, _ := logtest.NewNullLogger()
	_, err := Run(cfg, log)
	require.ErrorIs(t, err, histogram.ErrShortInput)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "output must not be created")

	// An existing output is left alone as well.
	require.NoError(t, os.WriteFile(cfg.Output, []byte("previous\n"), 0o644))
	_, err = Run(cfg, log)
	require.ErrorIs(t, err, histogram.ErrShortInput)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestRunMissingInput(t *testing.T) {
	cfg := scenario(t)
	cfg.Input = filepath.Join(t.TempDir(), "missing.dat")

	log, _ := logtest.NewNullLogger()
	_, err := Run(cfg, log)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunUnwritableOutput(t *testing.T) {
	cfg := scenario(t)
	cfg.Output = filepath.Join(t.TempDir(), "missing-dir", "out.dat")

	log, _ := logtest.NewNullLogger()
	_, err := Run(cfg, log)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunTrace(t *testing.T) {
	cfg := scenario(t)
	cfg.Trace = "0:0"

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	_, err := Run(cfg, log)
	require.NoError(t, err)

	var windows, contributions []*logrus.Entry
	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "window":
			windows = append(windows, e)
		case "contribution":
			contributions = append(contributions, e)
		}
	}

	require.Len(t, windows, 1)
	assert.Equal(t, 0, windows[0].Data["bin"])
	assert.Equal(t, 0, windows[0].Data["m"])
	assert.Equal(t, 3, windows[0].Data["n"])
	assert.Equal(t, logrus.DebugLevel, windows[0].Level)

	require.Len(t, contributions, 1)
	assert.Equal(t, 0, contributions[0].Data["source"])
	assert.Equal(t, 10.0, contributions[0].Data["amount"])
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, []int{100, 101, 102, 103, 104}, []int{0, 2, 4, 2, 0})

	out := filepath.Join(dir, "out.dat")
	require.NoError(t, os.WriteFile(out, []byte("100 1\n101 0\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Inspect(&buf, 1.0, src, out))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "File"))

	fields := strings.Fields(lines[2])
	assert.Equal(t, []string{src, "5", "8", "3", "4", "102", "2.00", "2.50", "0.707"}, fields)

	fields = strings.Fields(lines[3])
	assert.Equal(t, []string{out, "2", "1", "1", "1", "100", "0.50", "0.50", "0.000"}, fields)
}

func TestInspectMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := Inspect(&buf, 3.65, filepath.Join(t.TempDir(), "missing.dat"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

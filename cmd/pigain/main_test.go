package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-rebin/histogram"
	"github.com/cwbudde/algo-rebin/internal/config"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	c := newCLI(&stdout, &stderr)
	c.root.SetArgs(args)
	err := c.root.Execute()

	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T) (dir, in string) {
	t.Helper()
	dir = t.TempDir()
	in = filepath.Join(dir, "in.dat")
	require.NoError(t, os.WriteFile(in, []byte("0 100 10\n1 101 0\n2 102 0\n3 103 0\n"), 0o644))

	return dir, in
}

func TestRebinCommand(t *testing.T) {
	dir, in := writeInput(t)
	out := filepath.Join(dir, "out.dat")

	_, stderr, err := run(t, "rebin", in, out, "2.0", "1.0",
		"--bins", "4", "--nominal-width", "1", "--seed", "7", "--with-row")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0 100 10\n1 101 0\n2 102 0\n3 103 0\n", string(data))

	assert.Contains(t, stderr, "rebin configuration")
	assert.Contains(t, stderr, "seed=7")
	assert.Contains(t, stderr, "rebin complete")
}

func TestRebinCommandConfigFile(t *testing.T) {
	dir, in := writeInput(t)
	out := filepath.Join(dir, "out.dat")
	cfgPath := filepath.Join(dir, "run.yaml")

	yaml := "input: " + in + "\noutput: " + filepath.Join(dir, "ignored.dat") +
		"\nreference_energy: 9\ntrue_energy: 9\nbins: 4\nnominal_width: 1\nseed: 3\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o644))

	// Positional arguments override the file.
	_, _, err := run(t, "rebin", "--config", cfgPath, in, out, "2", "1", "--log-format", "json")
	require.NoError(t, err)

	h, err := histogram.ReadFile(out, 4, histogram.FormatOutput)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 0, 0, 0}, h.Counts)

	_, err = os.Stat(filepath.Join(dir, "ignored.dat"))
	assert.True(t, os.IsNotExist(err))

	// The file alone is enough.
	_, _, err = run(t, "rebin", "--config", cfgPath)
	require.NoError(t, err)

	h, err = histogram.ReadFile(filepath.Join(dir, "ignored.dat"), 4, histogram.FormatOutput)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 0, 0, 0}, h.Counts)
}

func TestRebinCommandErrors(t *testing.T) {
	dir, in := writeInput(t)
	out := filepath.Join(dir, "out.dat")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"non-numeric energy", []string{"rebin", in, out, "abc", "1"}, config.ErrInvalidConfig},
		{"zero reference energy", []string{"rebin", in, out, "0", "1"}, config.ErrInvalidConfig},
		{"short input", []string{"rebin", in, out, "2", "1", "--bins", "8"}, histogram.ErrShortInput},
		{"unknown strategy", []string{"rebin", in, out, "2", "1", "--strategy", "exact"}, config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.ErrorIs(t, err, tt.want)

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr), "output must not be created")
		})
	}

	_, _, err := run(t, "rebin", in, out)
	require.Error(t, err, "two positional arguments")

	_, _, err = run(t, "rebin", in, out, "2", "1", "--log-format", "xml")
	require.Error(t, err)

	_, _, err = run(t, "rebin", in, out, "2", "1", "--log-level", "loud")
	require.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	_, in := writeInput(t)

	stdout, _, err := run(t, "inspect", "--width", "1", in)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{in, "4", "10", "1", "10", "100", "0.50", "0.50", "0.000"}, strings.Fields(lines[2]))

	_, _, err = run(t, "inspect")
	require.Error(t, err)
}

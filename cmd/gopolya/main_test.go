package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/polyasystems/gopolya/gopolya"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) error {
	configPath, catalogPath, tolerance = "", "", 0

	root := newRootCmd(flag.NewFlagSet("", flag.ContinueOnError))
	root.SetArgs(args)
	return root.Execute()
}

func TestEnumerateWritesResultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runCmd(t, "enumerate", "cube", "face", "red:3, blue:3", "--out-dir", dir, "--preview", "0"))

	matches, err := filepath.Glob(filepath.Join(dir, "face_colorings_*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	buf, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Face colorings with 2 classes", lines[0])
	assert.Equal(t, "Class 1: red red red blue blue blue", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Class 2: red "))
}

func TestEnumerateMarksTruncatedResultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runCmd(t, "enumerate", "icosahedron", "vertex", "X:6, Y:6", "--max", "10", "--out-dir", dir, "--preview", "0"))

	matches, err := filepath.Glob(filepath.Join(dir, "vertex_colorings_*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	buf, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "Vertex colorings with at least 10 classes (truncated)", lines[0])
	assert.Equal(t, "Truncated after 10 classes", lines[11])

	// The full orbit count of 24 fits under the cap, so nothing is marked.
	dir = t.TempDir()
	require.NoError(t, runCmd(t, "enumerate", "icosahedron", "vertex", "X:6, Y:6", "--max", "24", "--out-dir", dir, "--preview", "0"))
	matches, err = filepath.Glob(filepath.Join(dir, "vertex_colorings_*.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	buf, err = os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(buf), "Vertex colorings with 24 classes\n"))
	assert.NotContains(t, string(buf), "Truncated")
}

func TestCommandsWithCatalog(t *testing.T) {
	dir := t.TempDir()
	catPath := filepath.Join(dir, "catalog")

	require.NoError(t, runCmd(t, "--catalog", catPath, "count", "dodeca", "vertex", "red:9, blue:6, green:5"))
	require.NoError(t, runCmd(t, "--catalog", catPath, "count", "icosahedron", "face", "-c", "2"))
	require.NoError(t, runCmd(t, "--catalog", catPath, "group", "dodecahedron", "face"))
	require.NoError(t, runCmd(t, "group", "--generators", "(0 1 2 3); (0 1)", "--n", "4", "--order", "24"))
	require.NoError(t, runCmd(t, "verify", "octahedron", "vertex", "a:3, b:3"))

	assert.Error(t, runCmd(t, "count", "cube", "vertex"))
	assert.Error(t, runCmd(t, "count", "prism", "vertex", "a:8"))
	assert.Error(t, runCmd(t, "enumerate", "cube", "vertex", "a:4, b:4", "--method", "sat", "--out-dir", dir))
	assert.Error(t, runCmd(t, "group"))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	pathname := filepath.Join(dir, "gopolya.yaml")
	require.NoError(t, os.WriteFile(pathname, []byte("max_results: 7\nmethod: filter\noutput_dir: out\n"), 0600))

	configPath, catalogPath, tolerance = pathname, "cat.db", 1e-4
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxResults)
	assert.Equal(t, gopolya.MethodFilter, cfg.EnumOpts().Method)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "cat.db", cfg.CatalogPath)
	assert.Equal(t, 1e-4, cfg.Tolerance)

	configPath, catalogPath, tolerance = "", "", 0
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, gopolya.DefaultConfig(), cfg)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/nav-landing/internal/config"
	"github.com/iwvelando/nav-landing/internal/store"
	"github.com/iwvelando/nav-landing/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", config: config.LoggingConfig{}},
		{name: "console debug", config: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "override wins", config: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "invalid level", config: config.LoggingConfig{Level: "verbose"}, wantErr: true},
		{name: "invalid format", config: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nav-landing.log")

	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

// workspace writes a configuration pointing at a temporary file store and a
// parameter document for the sample fund.
func workspace(t *testing.T) (configPath, paramsPath string) {
	t.Helper()
	dir := t.TempDir()

	configPath = filepath.Join(dir, "config.yaml")
	conf := "logging:\n" +
		"  outputFile: " + filepath.Join(dir, "nav-landing.log") + "\n" +
		"storage:\n" +
		"  driver: file\n" +
		"  path: " + filepath.Join(dir, "simulations") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(conf), 0o644))

	var doc bytes.Buffer
	require.NoError(t, config.EncodeDocument(&doc, testutil.SampleParameters()))
	paramsPath = filepath.Join(dir, "fonds.json")
	require.NoError(t, os.WriteFile(paramsPath, doc.Bytes(), 0o644))
	return configPath, paramsPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProjectCommand(t *testing.T) {
	configPath, paramsPath := workspace(t)

	out, err := run(t, "--config", configPath, "project", "--output-format", "csv", paramsPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,anr (Scénario de base),vl (Scénario de base)", lines[0])
	assert.Equal(t, "31/12/2024,10000000.00,1000.00", lines[1])
	assert.Equal(t, "30/06/2025,10137500.00,1013.75", lines[2])
}

func TestProjectCommandErrors(t *testing.T) {
	configPath, paramsPath := workspace(t)

	_, err := run(t, "--config", configPath, "project")
	assert.Error(t, err)

	_, err = run(t, "--config", configPath, "project", "--output-format", "html", paramsPath)
	assert.Error(t, err)

	_, err = run(t, "--config", configPath, "project", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSimulationsCommands(t *testing.T) {
	configPath, paramsPath := workspace(t)

	out, err := run(t, "--config", configPath, "simulations", "save", paramsPath)
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, "--config", configPath, "simulations", "list", "--fund", "Fonds Test")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Fonds Test")

	out, err = run(t, "--config", configPath, "simulations", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"nom_fonds": "Fonds Test"`)

	out, err = run(t, "--config", configPath, "project", "--output-format", "csv", "--simulation", id)
	require.NoError(t, err)
	assert.Contains(t, out, "1013.75")

	_, err = run(t, "--config", configPath, "simulations", "delete", id)
	require.NoError(t, err)

	_, err = run(t, "--config", configPath, "simulations", "show", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExportCommand(t *testing.T) {
	configPath, paramsPath := workspace(t)
	target := filepath.Join(t.TempDir(), "projection.xlsx")

	out, err := run(t, "--config", configPath, "export", paramsPath, "-o", target)
	require.NoError(t, err)
	assert.Equal(t, target, strings.TrimSpace(out))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestVersionCommand(t *testing.T) {
	configPath, _ := workspace(t)

	out, err := run(t, "--config", configPath, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

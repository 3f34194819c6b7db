package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goldilocks/internal/modules/numstack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const recordsCSV = `protocol,host_name,port,path
https,b.example,443,/
http,www.google.com,80,
http,www.google.com,,""
http,www.google.com,80,
http,broken,port,
`

func runCLI(t *testing.T, args ...string) (string, zap.AtomicLevel, error) {
	t.Helper()
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	logger := zaptest.NewLogger(t, zaptest.Level(level))

	root := NewRootCmd(logger, level)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), level, err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestRender(t *testing.T) {
	input := writeFile(t, "records.csv", recordsCSV)

	google := `Url { protocol: "http", host_name: "www.google.com", port: 80, path: "" }`
	googleNoPort := `Url { protocol: "http", host_name: "www.google.com", port: null, path: "" }`
	other := `Url { protocol: "https", host_name: "b.example", port: 443, path: "/" }`

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "input order",
			args:     []string{"render", "-i", input},
			expected: []string{other, google, googleNoPort, google},
		},
		{
			name:     "sorted unique",
			args:     []string{"render", "-i", input, "--sort", "--unique", "-w", "2"},
			expected: []string{googleNoPort, google, other},
		},
		{
			name: "explicit nulls",
			args: []string{"render", "-i", input, "--nulls", "explicit", "--unique"},
			expected: []string{
				other,
				`Url { protocol: "http", host_name: "www.google.com", port: 80, path: null }`,
				googleNoPort,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lines(out))
		})
	}
}

func TestRender_OutputFile(t *testing.T) {
	input := writeFile(t, "records.csv", recordsCSV)
	output := filepath.Join(t.TempDir(), "out", "rendered.txt")

	out, _, err := runCLI(t, "render", "-i", input, "-o", output, "--unique")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, lines(string(data)), 3)
}

func TestRender_ConfigFile(t *testing.T) {
	input := writeFile(t, "records.csv", recordsCSV)
	cfg := writeFile(t, "config.yaml", "log:\n  level: warn\nrender:\n  nulls: explicit\n  sort: true\n  unique: true\n")

	out, level, err := runCLI(t, "--config", cfg, "render", "-i", input)
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level.Level())
	got := lines(out)
	require.Len(t, got, 3)
	assert.Contains(t, got[1], "path: null")

	// Flags win over the file.
	out, level, err = runCLI(t, "--config", cfg, "--log-level", "debug", "render", "-i", input, "--sort=false", "--unique=false")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
	assert.Len(t, lines(out), 4)
}

func TestRender_Errors(t *testing.T) {
	_, _, err := runCLI(t, "render")
	assert.Error(t, err, "missing --input")

	_, _, err = runCLI(t, "render", "-i", filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	input := writeFile(t, "records.csv", recordsCSV)
	_, _, err = runCLI(t, "render", "-i", input, "--nulls", "maybe")
	assert.Error(t, err)

	_, _, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "render", "-i", input)
	assert.Error(t, err)
}

func TestStack(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		expected  []string
		expectErr error
	}{
		{
			name:     "push pop peek",
			args:     []string{"push", "1.5", "push", "2", "pop", "peek", "len"},
			expected: []string{"2", "1.5", "1"},
		},
		{
			name:     "empty checks",
			args:     []string{"empty", "push", "3", "empty", "pop", "empty"},
			expected: []string{"true", "false", "3", "true"},
		},
		{
			name:     "negative values",
			args:     []string{"push", "-1.5", "push", "-2e3", "pop", "pop", "empty"},
			expected: []string{"-2000", "-1.5", "true"},
		},
		{
			name:      "pop on empty",
			args:      []string{"push", "1", "pop", "pop"},
			expectErr: numstack.ErrEmptyStack,
		},
		{
			name:      "peek on empty",
			args:      []string{"peek"},
			expectErr: numstack.ErrEmptyStack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, append([]string{"stack"}, tt.args...)...)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lines(out))
		})
	}
}

func TestStack_NegativeValueAfterGlobalFlags(t *testing.T) {
	out, level, err := runCLI(t, "--log-level", "debug", "stack", "push", "-1", "peek")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level.Level())
	assert.Equal(t, []string{"-1"}, lines(out))
}

func TestRender_FailureKeepsExistingOutput(t *testing.T) {
	output := writeFile(t, "out.txt", "precious\n")

	_, _, err := runCLI(t, "render", "-i", filepath.Join(t.TempDir(), "absent.csv"), "-o", output)
	require.ErrorIs(t, err, os.ErrNotExist)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "precious\n", string(data))
}

func TestRender_ReadErrorWritesNothing(t *testing.T) {
	body := "protocol,host_name,port,path\nhttp,a,1,/\nhttp,b,2,/" + strings.Repeat("x", 2<<20) + "\n"
	input := writeFile(t, "records.csv", body)

	out, _, err := runCLI(t, "render", "-i", input)
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestExecute_LogsFailureWithConfiguredLogger(t *testing.T) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	initialCore, initialLogs := observer.New(zap.DebugLevel)
	jsonCore, jsonLogs := observer.New(zap.DebugLevel)

	a := newApp(zap.New(initialCore), level)
	a.newLogger = func(level zap.AtomicLevel, encoding string) (*zap.Logger, error) {
		assert.Equal(t, "json", encoding)
		return zap.New(jsonCore), nil
	}

	cfg := writeFile(t, "config.yaml", "log:\n  encoding: json\n")
	err := a.execute(context.Background(), []string{"--config", cfg, "render", "-i", filepath.Join(t.TempDir(), "absent.csv")})
	require.Error(t, err)

	assert.Equal(t, 0, initialLogs.FilterMessage("execution failed").Len())
	assert.Equal(t, 1, jsonLogs.FilterMessage("execution failed").Len())
}

func TestStack_InvalidOperations(t *testing.T) {
	for _, args := range [][]string{
		{"stack"},
		{"stack", "push"},
		{"stack", "push", "abc"},
		{"stack", "shove", "1"},
	} {
		_, _, err := runCLI(t, args...)
		assert.Error(t, err, "args %v", args)
	}
}

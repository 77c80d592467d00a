package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caio/go-ordstat/internal/judge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = "2 4\n10 20\n3 15\n4 15\n5 15\n2 3\n"

func TestRootCmd_Stdio(t *testing.T) {
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1\n10\n20\n-1\n", stdout.String())
	assert.Empty(t, stderr.String(), "nothing is logged at the default level")
}

func TestRootCmd_Files(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte(input), 0o600))

	cmd := newRootCmd()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--input", in, "--output", out, "--log-level", "info"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "1\n10\n20\n-1\n", string(got))
	assert.Contains(t, stderr.String(), "batch answered")
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		in   string
	}{
		{"bad log level", []string{"--log-level", "loud"}, input},
		{"missing input file", []string{"--input", filepath.Join(t.TempDir(), "nope")}, input},
		{"unexpected argument", []string{"extra"}, input},
		{"malformed input", []string{}, "1 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetIn(strings.NewReader(tt.in))
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			assert.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}
}

func TestRootCmd_MalformedIsWrapped(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("1 1\n5\n9 9\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())

	assert.ErrorIs(t, err, judge.ErrMalformedInput)
}

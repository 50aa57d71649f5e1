// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/troy-haydens-bot/Strang-4-subspace/internal/config"
	"github.com/troy-haydens-bot/Strang-4-subspace/internal/httpapi"
	"github.com/troy-haydens-bot/Strang-4-subspace/subspace"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()

	return out.String(), err
}

func TestCompute_JSON(t *testing.T) {
	out, err := run(t, "compute", "--matrix", "[[1,2],[2,4]]", "--verify")
	require.NoError(t, err)

	var res struct {
		Dimensions subspace.Dimensions `json:"dimensions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, subspace.Dimensions{M: 2, N: 2, Rank: 1}, res.Dimensions)
}

func TestCompute_Text(t *testing.T) {
	out, err := run(t, "compute", "-m", "[[1,0],[0,1]]", "--format", "text")
	require.NoError(t, err)
	require.Contains(t, out, "A is 2x2, rank 2")
	require.Contains(t, out, "Null Space N(A)  dim 0 in R^2\n  {0}")
	require.Contains(t, out, subspace.AnnotationColumnLeftNull)
}

func TestCompute_Files(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("matrix:\n  - [1, 2, 3]\n  - [2, 4, 6]\n"), 0o600))
	js := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(js, []byte(`[[1, 2, 3], [2, 4, 6]]`), 0o600))

	for _, p := range []string{yml, js} {
		out, err := run(t, "compute", "--file", p, "--format", "yaml")
		require.NoError(t, err, p)
		require.Contains(t, out, "rank: 1")
		require.Contains(t, out, "name: Null Space N(A)")
	}
}

func TestCompute_Errors(t *testing.T) {
	_, err := run(t, "compute")
	require.ErrorIs(t, err, errNoMatrix)

	_, err = run(t, "compute", "--matrix", "[[1,2],[3]]")
	require.ErrorIs(t, err, subspace.ErrInvalidInput)

	_, err = run(t, "compute", "--matrix", "[[1,2,3,4]]", "--max-cols", "3")
	require.ErrorIs(t, err, subspace.ErrTooLarge)

	_, err = run(t, "compute", "--matrix", "[[1]]", "--format", "xml")
	require.ErrorContains(t, err, "unknown --format")

	_, err = run(t, "compute", "--matrix", "[[1]]", "--file", "x.json")
	require.ErrorContains(t, err, "mutually exclusive")

	_, err = run(t, "compute", "--matrix", `{"rows": [[1]]}`)
	require.ErrorIs(t, err, errNoMatrix)
}

func TestGlobalFlags(t *testing.T) {
	_, err := run(t, "version", "--log-format", "yaml")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, appName+" "+version+"\n", out)
}

func TestDecodeMatrix(t *testing.T) {
	rows, err := decodeMatrix([]byte(`{"matrix": [[1, 2]]}`), json.Unmarshal)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2}}, rows)

	_, err = decodeMatrix([]byte(`not json`), json.Unmarshal)
	require.ErrorContains(t, err, "failed to decode matrix")

	_, err = decodeMatrix([]byte(`[[1, null], [3, 4]]`), json.Unmarshal)
	require.ErrorIs(t, err, errNullEntry)
	_, err = decodeMatrix([]byte(`{"matrix": [[1, null]]}`), json.Unmarshal)
	require.ErrorIs(t, err, errNullEntry)
	_, err = decodeMatrix([]byte("matrix:\n  - [1, ~]\n"), yaml.Unmarshal)
	require.ErrorIs(t, err, errNullEntry)
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 0
	srv := httpapi.NewServer(&cfg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, srv) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runServe did not return after cancel")
	}
}

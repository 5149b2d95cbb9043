package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battlepets/petstub"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func stubEndpoint(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(petstub.NewServer(petstub.DefaultFixture(), nil).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestGet(t *testing.T) {
	endpoint := stubEndpoint(t)

	out, err := run(t, "get", "42", "--endpoint", endpoint)
	require.NoError(t, err)
	assert.Contains(t, out, "Mini Tyrael (Humanoid)")
	assert.Contains(t, out, "breed: S/S")
	assert.Contains(t, out, "npc=42")

	out, err = run(t, "get", "42", "--endpoint", endpoint, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Mini Tyrael"`)

	_, err = run(t, "get", "9999", "--endpoint", endpoint)
	assert.ErrorContains(t, err, "status 404")
}

func TestCounters(t *testing.T) {
	endpoint := stubEndpoint(t)

	out, err := run(t, "counters", "dragonkin", "--endpoint", endpoint)
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "Mini Tyrael")
	assert.Contains(t, string(lines[1]), "Anubisath Idol")

	out, err = run(t, "counters", "Undead", "--endpoint", endpoint, "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	_, err = run(t, "counters", "Fish", "--endpoint", endpoint)
	assert.ErrorContains(t, err, "unknown pet type")
}

func TestTypes(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Dragonkin")
	assert.Contains(t, out, "countered by: Humanoid")
}

func TestInvalidEndpoint(t *testing.T) {
	_, err := run(t, "get", "1", "--endpoint", "not-a-url")
	assert.ErrorContains(t, err, "not an absolute URL")
}

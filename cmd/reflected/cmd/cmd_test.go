package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userYAML = `name: User
fields:
  - {name: id, type: int64}
  - {name: name, type: string}
  - {name: email, type: string}
  - {name: height, type: float64}
  - {name: team_id, type: int32}
  - {name: role, type: Role, values: [member, admin]}
  - {name: nick, type: string, optional: true}
`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user.yaml")
	require.NoError(t, os.WriteFile(path, []byte(userYAML), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	schema := writeSchema(t)

	out, err := run(t, "", "describe", schema)
	require.NoError(t, err)
	assert.Contains(t, out, "User (7 fields)")
	assert.Contains(t, out, "Optional(Text)")
	assert.Contains(t, out, "custom")
	assert.Contains(t, out, "fk")

	out, err = run(t, "", "describe", schema, "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: User")
	assert.Contains(t, out, "- member")

	_, err = run(t, "", "describe", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)

	_, err = run(t, "", "describe")
	assert.Error(t, err)
}

func TestRandom(t *testing.T) {
	schema := writeSchema(t)

	out, err := run(t, "", "random", schema, "-n", "3", "--seed", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "id"))
	assert.Contains(t, lines[2], "member")

	again, err := run(t, "", "random", schema, "-n", "3", "--seed", "5")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = run(t, "", "random", schema, "-n", "-1")
	assert.Error(t, err)
}

func TestRandomStoreAndDump(t *testing.T) {
	schema := writeSchema(t)
	dir := filepath.Join(t.TempDir(), "data")

	out, err := run(t, "", "random", schema, "-n", "4", "--seed", "9", "--store", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "key"))
	assert.FileExists(t, filepath.Join(dir, "User.meta.json"))

	out, err = run(t, "", "dump", schema, "--store", dir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// random ids in [0, 100] may collide; at least one record is stored
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[2], "User/"))
}

func TestDump_EmptyStore(t *testing.T) {
	schema := writeSchema(t)
	out, err := run(t, "", "dump", schema, "--store", t.TempDir())
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestShell_Piped(t *testing.T) {
	schema := writeSchema(t)
	dir := t.TempDir()
	hist := filepath.Join(t.TempDir(), "history")

	script := strings.Join([]string{
		"set id 12",
		"set name peter",
		"set height 6.45",
		"set role admin",
		"bogus",
		"save",
		"new",
		"get name",
		"load User/12",
		"get height",
		"quit",
		"get id",
	}, "\n")

	out, err := run(t, script, "shell", schema, "--store", dir, "--history", hist)
	require.NoError(t, err)
	assert.Contains(t, out, "error: shell: unknown command: bogus")
	assert.Contains(t, out, "User/12\n")
	assert.Contains(t, out, "\n6.45\n")

	data, err := os.ReadFile(hist)
	require.NoError(t, err)
	assert.Contains(t, string(data), "set name peter")
	assert.Contains(t, string(data), "quit")
	assert.NotContains(t, string(data), "get id")
}

func TestConfigFlag(t *testing.T) {
	schema := writeSchema(t)
	path := filepath.Join(t.TempDir(), "reflected.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  seed: 77\n  text_length: 4\n"), 0o644))

	out, err := run(t, "", "--config", path, "--log-level", "debug", "random", schema)
	require.NoError(t, err)
	assert.Equal(t, uint64(77), cfg.Generator.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotEmpty(t, out)

	_, err = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "describe", schema)
	assert.Error(t, err)
}

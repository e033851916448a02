package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const testGrid = `
columns:
  - name: name
    validators:
      minLength: 2
      notNull: true
  - name: age
    validators:
      notNull: true
    range:
      min: 18
      max: 120
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runAppWithLogs(t, args...)
	return out, err
}

func runAppWithLogs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := app.Run(context.Background(), append([]string{"gridcheck"}, args...))
	return out.String(), errOut.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	grid := writeFile(t, dir, "grid.yaml", testGrid)

	t.Run("all rows valid", func(t *testing.T) {
		rows := writeFile(t, dir, "valid.yaml", `
- name: Ada
  age: 36
- name: Bob
  age: "42"
`)
		out, err := runApp(t, "validate", "--grid", grid, "--rows", rows)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("numeric cells have no length", func(t *testing.T) {
		lengths := writeFile(t, dir, "lengths.yaml", `
columns:
  - name: age
    validators:
      minLength: 2
      maxLength: 3
      notNull: true
`)
		rows := writeFile(t, dir, "numbers.yaml", `
- age: 36
- age: 7
- age: 12345
- age: "7"
`)
		out, err := runApp(t, "validate", "--grid", lengths, "--rows", rows)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 invalid cell(s) in 4 row(s)")
		assert.Equal(t, "row 4, column age: Error:\nValue should be at least 2 characters long.\n", out)
	})

	t.Run("invalid cells exit with status 1", func(t *testing.T) {
		rows := writeFile(t, dir, "invalid.yaml", `
- name: A
  age: 12
- name: Grace
`)
		out, err := runApp(t, "validate", "--grid", grid, "--rows", rows)
		require.Error(t, err)

		var exitErr cli.ExitCoder
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 1, exitErr.ExitCode())
		assert.Contains(t, err.Error(), "3 invalid cell(s) in 2 row(s)")

		assert.Contains(t, out, "row 1, column name: Error:\nValue should be at least 2 characters long.\n")
		assert.Contains(t, out, "row 1, column age: Error:\nValue should be at least 18.\n")
		assert.Contains(t, out, "row 2, column age: Error:\nA value is needed.\n")
	})

	t.Run("html output in another language", func(t *testing.T) {
		rows := writeFile(t, dir, "html.yaml", `
- name: ""
  age: 30
`)
		out, err := runApp(t, "validate", "--grid", grid, "--rows", rows, "--format", "html", "--lang", "de")
		require.Error(t, err)
		assert.Equal(t,
			`<div data-row="1" data-column="name"><p><b>Fehler:</b></p>Der Wert sollte mindestens 2 Zeichen lang sein.<br/>Ein Wert wird benötigt.<br/></div>`+"\n",
			out)
	})

	t.Run("unknown validator type", func(t *testing.T) {
		strange := writeFile(t, dir, "strange.yaml", `
columns:
  - name: email
    validators:
      email: true
      notNull: true
`)
		rows := writeFile(t, dir, "emails.yaml", "- email: a@example.com\n")

		_, err := runApp(t, "validate", "--grid", strange, "--rows", rows)
		assert.ErrorContains(t, err, "unknown validator type")

		out, err := runApp(t, "validate", "--grid", strange, "--rows", rows, "--lenient")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("debug logs carry the row and cell", func(t *testing.T) {
		rows := writeFile(t, dir, "logged.yaml", "- name: Ada\n  age: 36\n")
		_, logs, err := runAppWithLogs(t, "validate", "--grid", grid, "--rows", rows, "--log-level", "debug")
		require.NoError(t, err)

		var found bool
		for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
			if entry["msg"] != "validator completed" || entry["validator"] != "notNull" {
				continue
			}
			cell, ok := entry["cell"].(map[string]any)
			require.True(t, ok)
			if cell["column"] != "age" {
				continue
			}
			found = true
			assert.Equal(t, rows, entry["rows_file"])
			assert.InDelta(t, 1, entry["row"], 0)
			assert.Equal(t, "gridvalidate", entry["service"])
			assert.Equal(t, "production", entry["env"])
		}
		assert.True(t, found, logs)
	})

	t.Run("bad input", func(t *testing.T) {
		rows := writeFile(t, dir, "rows.yaml", "- name: Ada\n")

		_, err := runApp(t, "validate", "--grid", grid, "--rows", rows, "--format", "xml")
		assert.ErrorContains(t, err, "unknown output format")

		_, err = runApp(t, "validate", "--grid", filepath.Join(dir, "missing.yaml"), "--rows", rows)
		assert.ErrorContains(t, err, "read grid")

		empty := writeFile(t, dir, "empty.yaml", "columns: []\n")
		_, err = runApp(t, "validate", "--grid", empty, "--rows", rows)
		assert.ErrorContains(t, err, "defines no columns")

		_, err = runApp(t, "validate", "--grid", grid)
		assert.Error(t, err)
	})
}

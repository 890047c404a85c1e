package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunExpr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-expr", "9 - 2 + 3"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t,
		"0000  PUSH_NUM 9\n0001  PUSH_NUM 2\n0002  SUB\n0003  PUSH_NUM 3\n0004  ADD\n0005  RIGHT_OUTPUT\n",
		stdout.String())
}

func TestRunStdinWithTables(t *testing.T) {
	tablePath := writeFile(t, "tables.yaml", "tables:\n  - name: t\n  - name: u\n")
	input := "% comment\n\nt[u[0]]\n\\$\n"

	var stdout, stderr bytes.Buffer
	code := run([]string{"-tables", tablePath, "-mode", "pushback"}, strings.NewReader(input), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t,
		"0000  PUSH_NUM 0\n0001  LOOKUP 1\n0002  LOOKUP 0\n0003  PBACK_OUTPUT\n0004  PUSH_LCHAR 0\n0005  PBACK_OUTPUT\n",
		stdout.String())
}

func TestRunIsolatesFailedLines(t *testing.T) {
	input := "1\n2 + nosuch[0]\n(3\n4\n"

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(input), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t,
		"0000  PUSH_NUM 1\n0001  RIGHT_OUTPUT\n0002  PUSH_NUM 4\n0003  RIGHT_OUTPUT\n",
		stdout.String())
	assert.Contains(t, stderr.String(), "table not defined: nosuch")
	assert.Contains(t, stderr.String(), "syntax error")
}

func TestRunLineNumbers(t *testing.T) {
	input := "% header\n1 + 2\n\nnosuch[0]\n  \\1\n"

	var stdout, stderr bytes.Buffer
	code := run([]string{"-format", "lines"}, strings.NewReader(input), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t,
		"0000  PUSH_NUM 1 ; line 2\n"+
			"0001  PUSH_NUM 2 ; line 2\n"+
			"0002  ADD ; line 2\n"+
			"0003  RIGHT_OUTPUT ; line 2\n"+
			"0004  PUSH_CHAR 1 ; line 5\n"+
			"0005  RIGHT_OUTPUT ; line 5\n",
		stdout.String())
	assert.Contains(t, stderr.String(), "line=4")

	stdout.Reset()
	stderr.Reset()
	run([]string{"-format", "lines"}, strings.NewReader("1\n\n(2\n"), &stdout, &stderr)
	assert.Contains(t, stderr.String(), "syntax error at line 3")
}

func TestRunFilesAndFormats(t *testing.T) {
	path := writeFile(t, "prog.ocp", "65\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-format", "hex", path}, nil, &stdout, &stderr), stderr.String())
	assert.Equal(t, "00110041"+"00010000\n", stdout.String())

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-format", "words", "-mode", "expr", path}, nil, &stdout, &stderr))
	assert.Equal(t, "00110041\n", stdout.String())

	stdout.Reset()
	assert.Equal(t, 1, run([]string{"-format", "pdf", path}, nil, &stdout, &stderr))
}

func TestRunTrace(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-trace", "-trace-filter", "PUSH_*", "-expr", "1 + 2"}, nil, &stdout, &stderr)

	require.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "PUSH_NUM")
	assert.NotContains(t, stderr.String(), "op=ADD")
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run([]string{"-bogus"}, nil, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"-tables", filepath.Join(t.TempDir(), "none.yaml"), "-expr", "1"}, nil, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{filepath.Join(t.TempDir(), "none.ocp")}, nil, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"-mode", "sideways", "-expr", "1"}, nil, &stdout, &stderr))
	assert.Equal(t, 1, run([]string{"-expr", "70000"}, nil, &stdout, &stderr))
}

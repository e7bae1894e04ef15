package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relation-finder/pslq"
)

func TestReadSkipsBlankAndCommentLines(t *testing.T) {
	in := bytes.NewBufferString("# comment\n\n1.5\n  2.5  \n")
	xs, err := read(in, nil, 64)
	require.NoError(t, err)
	require.Len(t, xs, 2)
	require.Equal(t, "1.5", xs[0].Text('g', 10))
	require.Equal(t, "2.5", xs[1].Text('g', 10))
}

func TestReadRejectsUnparsableLine(t *testing.T) {
	in := bytes.NewBufferString("not-a-number\n")
	_, err := read(in, nil, 64)
	require.Error(t, err)
}

func TestReadFileDash(t *testing.T) {
	oldStdin := stdin
	defer func() { stdin = oldStdin }()
	stdin = bytes.NewBufferString("3.0\n")

	xs, err := readFile("-", nil, 64)
	require.NoError(t, err)
	require.Len(t, xs, 1)
}

func TestReadFileFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o644))

	xs, err := readFile(path, nil, 64)
	require.NoError(t, err)
	require.Len(t, xs, 2)
}

func TestBindConfigFlagOverridesDefault(t *testing.T) {
	root := newRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, run.Flags().Set("prec", "256"))

	v, err := bindConfig(run)
	require.NoError(t, err)
	require.Equal(t, 256, v.GetInt("prec"))
}

func TestBindConfigEnvOverridesFlagDefault(t *testing.T) {
	root := newRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)

	t.Setenv("PSLQ_MAX_NORM", "42")
	v, err := bindConfig(run)
	require.NoError(t, err)
	require.Equal(t, 42.0, v.GetFloat64("max-norm"))
}

func TestRunRunEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consts.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o644))

	oldStdout := stdout
	buf := new(bytes.Buffer)
	stdout = buf
	defer func() { stdout = oldStdout }()

	root := newRootCmd()
	root.SetArgs([]string{"run", "--max-steps", "200", path})
	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), "Relation found")
}

func TestPrintResultReportsNoRelation(t *testing.T) {
	oldStdout := stdout
	buf := new(bytes.Buffer)
	stdout = buf
	defer func() { stdout = oldStdout }()

	printResult(&pslq.Result{}, nil, 64)
	require.Contains(t, buf.String(), "No relation found")
}

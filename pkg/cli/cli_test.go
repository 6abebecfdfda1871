// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/sqlbinder/pkg/cli/clierror"
	"github.com/cockroachdb/sqlbinder/pkg/util/leaktest"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	"github.com/stretchr/testify/require"
)

// runForTest runs the command line and returns its standard output and
// error.
func runForTest(args ...string) (stdout, stderr string, err error) {
	setBindContextDefaults()
	var outBuf, errBuf bytes.Buffer
	stmtbindCmd.SetOut(&outBuf)
	stmtbindCmd.SetErr(&errBuf)
	defer func() {
		stmtbindCmd.SetOut(nil)
		stmtbindCmd.SetErr(nil)
	}()
	err = Run(args)
	return outBuf.String(), errBuf.String(), err
}

// TestBind runs the bind command on the scripts listed in the input of
// each "bind" directive. The arguments of the directive are the flags of
// the command; file names are relative to testdata.
func TestBind(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.Scope(t).Close(t)
	defer log.SetRedactable(log.SetRedactable(false))

	datadriven.RunTest(t, filepath.Join("testdata", "bind"), func(t *testing.T, d *datadriven.TestData) string {
		if d.Cmd != "bind" {
			d.Fatalf(t, "unknown command %s", d.Cmd)
		}
		args := []string{"bind", "--parallelism=2"}
		for _, arg := range d.CmdArgs {
			switch arg.Key {
			case "catalog":
				args = append(args, "--catalog="+filepath.Join("testdata", arg.Vals[0]))
			case "max-memory":
				args = append(args, "--max-memory="+arg.Vals[0])
			case "redactable":
				args = append(args, "--redactable")
			default:
				d.Fatalf(t, "unknown argument %s", arg.Key)
			}
		}
		for _, script := range strings.Fields(d.Input) {
			args = append(args, filepath.Join("testdata", script))
		}

		stdout, _, err := runForTest(args...)
		if err != nil {
			stdout += fmt.Sprintf("error: %v\nexit code: %d\n", err, clierror.GetExitCode(err).Int())
		}
		return stdout
	})
}

func TestBindFlagErrors(t *testing.T) {
	defer leaktest.AfterTest(t)()

	_, _, err := runForTest("bind", "--max-memory=lots", "script.yaml")
	require.Error(t, err)
	require.Equal(t, 4, clierror.GetExitCode(err).Int())

	_, _, err = runForTest("bind", "--catalog=catalog.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestBindVerbose(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.SetOutput(log.SetOutput(io.Discard))
	defer log.SetVerbosity(log.SetVerbosity(0))

	_, stderr, err := runForTest("bind", "--verbosity=2",
		"--catalog="+filepath.Join("testdata", "catalog.yaml"), filepath.Join("testdata", "ok.yaml"))
	require.NoError(t, err)
	require.Contains(t, stderr, "loaded 2 tables")
	require.Contains(t, stderr, "script=ok.yaml")
	require.Contains(t, stderr, "added column")
}

func TestBindEmptyCatalog(t *testing.T) {
	defer leaktest.AfterTest(t)()
	defer log.SetOutput(log.SetOutput(io.Discard))

	catalogPath := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte("tables: []\n"), 0644))

	stdout, stderr, err := runForTest("bind",
		"--catalog="+catalogPath, filepath.Join("testdata", "ok.yaml"))
	require.Equal(t, 125, clierror.GetExitCode(err).Int())
	require.Contains(t, stderr, "defines no tables")
	require.Contains(t, stdout, `relation "orders" does not exist`)
}

func TestVersion(t *testing.T) {
	defer leaktest.AfterTest(t)()

	stdout, _, err := runForTest("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "Build Tag:")
	require.Contains(t, stdout, "Go Version:")
}

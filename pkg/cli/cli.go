// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the stmtbind command line: it binds the queries of
// YAML scripts against a YAML catalog and prints the bound statements.
package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/sqlbinder/pkg/build"
	"github.com/cockroachdb/sqlbinder/pkg/cli/clierror"
	"github.com/cockroachdb/sqlbinder/pkg/cli/exit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "output version information",
	Long: `
Output build version information.
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := build.GetInfo()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 1, 2, ' ', 0)
		fmt.Fprintf(tw, "Build Tag:\t%s\n", info.Tag)
		fmt.Fprintf(tw, "Build Time:\t%s\n", info.Time)
		fmt.Fprintf(tw, "Revision:\t%s\n", info.Revision)
		fmt.Fprintf(tw, "Platform:\t%s\n", info.Platform)
		fmt.Fprintf(tw, "Go Version:\t%s\n", info.GoVersion)
		if versionCtx.includeDeps {
			fmt.Fprintf(tw, "Build Deps:\n\t%s\n", strings.Join(info.Dependencies, "\n\t"))
		}
		_ = tw.Flush()
	},
}

var stmtbindCmd = &cobra.Command{
	Use:   "stmtbind [command] (flags)",
	Short: "SQL statement binder",
	Long: `
Resolve the table and column references of SQL queries against a catalog
and print the resulting bound statements.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.EnableCommandSorting = false

	stmtbindCmd.AddCommand(
		bindCmd,
		versionCmd,
	)
	stmtbindCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierror.NewError(err, exit.CommandLineFlagError())
	})
}

// Main is the entry point of the stmtbind binary.
func Main() {
	if err := Run(os.Args[1:]); err != nil {
		clierror.OutputError(os.Stderr, err)
		os.Exit(clierror.GetExitCode(err).Int())
	}
}

// Run runs the command line with the given arguments.
func Run(args []string) error {
	stmtbindCmd.SetArgs(args)
	return stmtbindCmd.Execute()
}

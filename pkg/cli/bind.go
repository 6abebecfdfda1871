// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/sqlbinder/pkg/cli/clierror"
	"github.com/cockroachdb/sqlbinder/pkg/cli/cliflags"
	"github.com/cockroachdb/sqlbinder/pkg/cli/exit"
	"github.com/cockroachdb/sqlbinder/pkg/sql/opt/testutils/testcat"
	"github.com/cockroachdb/sqlbinder/pkg/util/humanizeutil"
	"github.com/cockroachdb/sqlbinder/pkg/util/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var bindCmd = &cobra.Command{
	Use:   "bind --catalog <file> <script> [<script>...]",
	Short: "bind the queries of scripts against a catalog",
	Long: `
Bind the queries of one or more YAML scripts against the tables of a YAML
catalog and print the bound statements. Scripts are independent of each
other and are bound concurrently; the queries of a script are bound in
order, and a query may select from an earlier query of its script.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBind,
}

func init() {
	AddPersistentPreRunE(bindCmd, func(cmd *cobra.Command, _ []string) error {
		log.SetOutput(cmd.ErrOrStderr())
		log.SetVerbosity(int32(bindCtx.verbosity))
		log.SetRedactable(bindCtx.redactable)
		return nil
	})
}

// scriptResult is the outcome of binding one script file.
type scriptResult struct {
	output bytes.Buffer
	stats  scriptStats
	err    error
}

func runBind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if bindCtx.catalogPath == "" {
		return clierror.NewError(
			errors.Newf("--%s is required", cliflags.Catalog.Name), exit.CommandLineFlagError())
	}
	catalog, err := testcat.LoadFile(bindCtx.catalogPath)
	if err != nil {
		return err
	}
	if len(catalog.Tables()) == 0 {
		log.Warningf(ctx, "catalog %s defines no tables", bindCtx.catalogPath)
	} else {
		log.VEventf(ctx, 1, "loaded %d tables from %s",
			log.Safe(len(catalog.Tables())), bindCtx.catalogPath)
	}

	results := make([]scriptResult, len(args))
	g, gCtx := errgroup.WithContext(ctx)
	if bindCtx.parallelism > 0 {
		g.SetLimit(bindCtx.parallelism)
	}
	for i := range args {
		i := i
		g.Go(func() error {
			res := &results[i]
			ctx := logtags.AddTag(gCtx, "script", filepath.Base(args[i]))
			data, err := os.ReadFile(args[i])
			if err != nil {
				res.err = errors.Wrap(err, "reading script")
				return nil
			}
			s, err := parseScript(data)
			if err != nil {
				res.err = err
				return nil
			}
			res.stats, res.err = bindScript(ctx, catalog, s, bindCtx.maxMemory, bindCtx.redactable, &res.output)
			if res.err != nil {
				log.VErrEventf(ctx, 1, "%v", res.err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for i := range results {
		res := &results[i]
		fmt.Fprintf(out, "-- %s\n", filepath.Base(args[i]))
		_, _ = res.output.WriteTo(out)
		if res.err != nil {
			failed++
			clierror.OutputError(out, res.err)
		}
		fmt.Fprintf(out, "-- %d queries bound, peak memory %s\n",
			res.stats.queries, humanizeutil.IBytes(res.stats.peakBytes))
	}
	if failed > 0 {
		return clierror.NewError(
			errors.Newf("%d of %d scripts failed to bind", failed, len(args)), exit.BindError())
	}
	return nil
}

// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"
	"runtime"

	"github.com/cockroachdb/sqlbinder/pkg/cli/cliflags"
	"github.com/cockroachdb/sqlbinder/pkg/util/humanizeutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindCtx holds the configuration of the bind command.
var bindCtx struct {
	catalogPath string
	maxMemory   int64
	parallelism int
	redactable  bool
	verbosity   int
}

var versionCtx struct {
	includeDeps bool
}

// setBindContextDefaults resets bindCtx to its default values.
func setBindContextDefaults() {
	bindCtx.catalogPath = ""
	bindCtx.maxMemory = 0
	bindCtx.parallelism = runtime.GOMAXPROCS(0)
	bindCtx.redactable = false
	bindCtx.verbosity = 0
}

// AddPersistentPreRunE add 'fn' as a persistent pre-run function to 'cmd'.
// If the command has an existing pre-run function, it is saved and will be
// called at the beginning of 'fn'.
func AddPersistentPreRunE(cmd *cobra.Command, fn func(*cobra.Command, []string) error) {
	wrapped := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if wrapped != nil {
			if err := wrapped(cmd, args); err != nil {
				return err
			}
		}
		return fn(cmd, args)
	}
}

func setFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		if value, set := os.LookupEnv(flagInfo.EnvVar); set {
			if err := f.Set(flagInfo.Name, value); err != nil {
				panic(err)
			}
		}
	}
}

// StringFlag creates a string flag and registers it with the FlagSet.
func StringFlag(f *pflag.FlagSet, valPtr *string, flagInfo cliflags.FlagInfo) {
	f.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, *valPtr, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func IntFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, *valPtr, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// BoolFlag creates a bool flag and registers it with the FlagSet.
func BoolFlag(f *pflag.FlagSet, valPtr *bool, flagInfo cliflags.FlagInfo) {
	f.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, *valPtr, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

// BytesFlag creates a byte size flag and registers it with the FlagSet.
func BytesFlag(f *pflag.FlagSet, valPtr *int64, flagInfo cliflags.FlagInfo) {
	f.VarP(humanizeutil.NewBytesValue(valPtr), flagInfo.Name, flagInfo.Shorthand, flagInfo.Usage())

	setFlagFromEnv(f, flagInfo)
}

func init() {
	setBindContextDefaults()

	{
		f := bindCmd.Flags()
		StringFlag(f, &bindCtx.catalogPath, cliflags.Catalog)
		BytesFlag(f, &bindCtx.maxMemory, cliflags.MaxMemory)
		IntFlag(f, &bindCtx.parallelism, cliflags.Parallelism)
		BoolFlag(f, &bindCtx.redactable, cliflags.Redactable)
		IntFlag(f, &bindCtx.verbosity, cliflags.Verbosity)
	}
	{
		f := versionCmd.Flags()
		BoolFlag(f, &versionCtx.includeDeps, cliflags.BuildDeps)
	}
}

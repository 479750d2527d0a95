// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/describe"
	"github.com/cockroachdb/errors"
	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	maxDepthKey = "max_depth"
	maxCountKey = "max_count"
)

type rootFlags struct {
	configFile string
	stats      bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "describe [files...]",
		Short: "print bounded descriptions of YAML or JSON documents",
		Long: `
Reads YAML or JSON documents from the given files, or from standard input if
no files are given, and prints one description per document. Nesting deeper
than the depth limit is replaced by [...] and container elements beyond the
count limit are replaced by "...".

Limits are taken, in decreasing order of precedence, from the command line
flags, the DESCRIBE_MAX_DEPTH and DESCRIBE_MAX_COUNT environment variables and
the options file given with --config.
`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v, flags.configFile)
			if err != nil {
				return err
			}
			return run(cmd, args, opts, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("max-depth", "",
		`maximum nesting depth ("unlimited" or a negative value disables the limit)`)
	pf.String("max-count", "",
		`maximum number of elements per container ("unlimited" or a negative value disables the limit)`)
	pf.StringVar(&flags.configFile, "config", "",
		"options file in the format printed by the print-options command")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "print a table of traversal statistics")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log the options and registered strategies")

	v.SetEnvPrefix("DESCRIBE")
	v.AutomaticEnv()
	_ = v.BindPFlag(maxDepthKey, pf.Lookup("max-depth"))
	_ = v.BindPFlag(maxCountKey, pf.Lookup("max-count"))

	cmd.AddCommand(newPrintOptionsCmd(v, &flags))
	return cmd
}

func newPrintOptionsCmd(v *viper.Viper, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "print-options",
		Short: "print the effective options in the format accepted by --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, flags.configFile)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), opts.String())
			return err
		},
	}
}

// loadOptions builds the options from the options file, overridden by the
// environment and the command line.
func loadOptions(v *viper.Viper, configFile string) (*describe.Options, error) {
	opts := &describe.Options{}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.Wrapf(err, "reading options file")
		}
		if err := opts.Parse(string(data)); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", configFile)
		}
	}
	for _, l := range []struct {
		key string
		set func(int)
	}{
		{maxDepthKey, opts.SetMaxDepth},
		{maxCountKey, opts.SetMaxCount},
	} {
		s := v.GetString(l.key)
		if s == "" {
			continue
		}
		n, err := describe.ParseLimit(s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", l.key)
		}
		l.set(n)
	}
	opts.EnsureDefaults()
	return opts, nil
}

type input struct {
	name string
	r    io.Reader
}

func run(cmd *cobra.Command, args []string, opts *describe.Options, flags rootFlags) error {
	d, err := describe.New(opts)
	if err != nil {
		return err
	}
	if flags.verbose {
		opts.Logger.Infof("max_depth=%d max_count=%d", opts.MaxDepth, opts.MaxCount)
		opts.Logger.Infof("registered strategies: %s", d.Registry())
	}

	inputs := []input{{name: "stdin", r: cmd.InOrStdin()}}
	if len(args) > 0 {
		inputs = inputs[:0]
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			inputs = append(inputs, input{name: path, r: f})
		}
	}

	out := cmd.OutOrStdout()
	var rows [][]string
	for _, in := range inputs {
		dec := yaml.NewDecoder(in.r)
		for doc := 1; ; doc++ {
			var v any
			if err := dec.Decode(&v); err == io.EOF {
				break
			} else if err != nil {
				return errors.Wrapf(err, "decoding %s", in.name)
			}
			stats, err := d.DescribeStats(out, v, opts.MaxDepth, opts.MaxCount)
			if err == nil {
				_, err = io.WriteString(out, "\n")
			}
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d", in.name, doc),
				fmt.Sprint(stats.Values),
				fmt.Sprint(stats.Cycles),
				fmt.Sprint(stats.DepthLimited),
				fmt.Sprint(stats.Truncated),
				fmt.Sprint(stats.MaxDepth),
			})
		}
	}

	if flags.stats {
		tbl := tablewriter.NewWriter(out)
		tbl.SetHeader([]string{"Document", "Values", "Cycles", "Depth limited", "Truncated", "Max depth"})
		tbl.AppendBulk(rows)
		tbl.Render()
	}
	if flags.verbose {
		opts.Logger.Infof("%s", d.Metrics())
	}
	return nil
}

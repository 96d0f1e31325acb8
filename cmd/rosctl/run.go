package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zereker/rosapi"
)

// hostResult is the outcome of one command on one device.
type hostResult struct {
	Host    string
	Records []Record
	Err     error
}

func newRunCmd(a *app) *cobra.Command {
	var hosts []string

	cmd := &cobra.Command{
		Use:   "run -- <command> [=key=value ...]",
		Short: "Run one API command on every configured device",
		Example: `  rosctl run --host 192.168.88.1 -- /system/resource/print
  rosctl -c fleet.yml run -- /ip/address/print ?interface=ether1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(hosts) > 0 {
				a.cfg.Hosts = hosts
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			results, err := runAll(cmd.Context(), a.cfg, a.logger, args)
			if err != nil {
				return err
			}

			failed := render(cmd.OutOrStdout(), results)
			if failed > 0 {
				return errors.Errorf("%d of %d hosts failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&hosts, "host", nil, "device address, overrides the configured hosts")
	return cmd
}

// runAll runs words on every host, each over its own connection.
func runAll(ctx context.Context, cfg *Config, logger zerolog.Logger, words []string) ([]hostResult, error) {
	results := make([]hostResult, len(cfg.Hosts))

	var group errgroup.Group
	group.SetLimit(cfg.Parallel)

	for i, host := range cfg.Hosts {
		i, host := i, host // per-iteration copies (go directive < 1.22)
		hostLogger := logger.With().Str("host", host).Logger()
		opts, err := cfg.Options(zerologAdapter{logger: hostLogger})
		if err != nil {
			return nil, err
		}

		group.Go(func() error {
			records, err := runHost(ctx, host, cfg, opts, words)
			if err != nil {
				hostLogger.Warn().Err(err).Msg("command failed")
			}
			results[i] = hostResult{Host: host, Records: records, Err: err}
			return nil
		})
	}

	_ = group.Wait()
	return results, nil
}

func runHost(ctx context.Context, host string, cfg *Config, opts []rosapi.Option, words []string) ([]Record, error) {
	p, err := rosapi.Dial(ctx, host, opts...)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	if err := login(p, cfg.Username, cfg.Password); err != nil {
		return nil, errors.Wrap(err, "login")
	}
	return execute(p, words...)
}

// render prints one table per host and returns the number of failures.
func render(w io.Writer, results []hostResult) int {
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(w, "%s: error: %v\n", res.Host, res.Err)
			continue
		}

		fmt.Fprintf(w, "%s: %d record(s)\n", res.Host, len(res.Records))
		if len(res.Records) == 0 {
			continue
		}

		columns := recordColumns(res.Records)
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetHeader(columns)
		for _, rec := range res.Records {
			row := make([]string, len(columns))
			for j, col := range columns {
				row[j] = rec[col]
			}
			table.Append(row)
		}
		table.Render()
	}
	return failed
}

// recordColumns returns the union of keys, ".id" first, the rest sorted.
func recordColumns(records []Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for key := range rec {
			seen[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		if key != ".id" {
			columns = append(columns, key)
		}
	}
	sort.Strings(columns)

	if _, ok := seen[".id"]; ok {
		columns = append([]string{".id"}, columns...)
	}
	return columns
}

// Command pcx runs the prediction engine against snapshot files, without
// databases or a cache server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pitchconnect/analytics-api/internal/cache"
	"github.com/pitchconnect/analytics-api/internal/logic"
	"github.com/pitchconnect/analytics-api/internal/models"
	"github.com/pitchconnect/analytics-api/internal/registry"
)

// options are the flags shared by every command
type options struct {
	snapshots []string
	at        string
	format    string
	verbose   bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "pcx",
		Short: "Run injury, performance, value and comparison assessments offline",
		Long: `pcx evaluates player snapshots stored as JSON or YAML files with the same
engine the API serves. Each file holds one snapshot or a list of snapshots.

Examples:
  pcx injury --snapshot squad.yaml p7
  pcx performance --snapshot p7.json --horizon next_month
  pcx value --snapshot squad.yaml --currency EUR p7
  pcx compare --snapshot squad.yaml p7 p9
  pcx team --snapshot squad.yaml --feature value t1`,
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringSliceVarP(&opts.snapshots, "snapshot", "s", nil, "Snapshot file (repeatable, .json/.yaml)")
	root.PersistentFlags().StringVar(&opts.at, "at", "", "Evaluate as of this RFC3339 instant (default: now)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "json", "Output format (json|yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine activity to stderr")

	root.AddCommand(
		injuryCmd(opts),
		performanceCmd(opts),
		valueCmd(opts),
		compareCmd(opts),
		teamCmd(opts),
		sportsCmd(opts),
	)
	return root
}

// setup loads the snapshots and builds an engine over them
func setup(opts *options) (*logic.Engine, *fileStore, error) {
	if len(opts.snapshots) == 0 {
		return nil, nil, fmt.Errorf("at least one --snapshot file is required")
	}
	fs, err := loadFiles(opts.snapshots)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now
	if opts.at != "" {
		at, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --at: %w", err)
		}
		now = func() time.Time { return at }
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}

	engine := logic.NewEngine(logic.EngineConfig{
		Store:  fs,
		Cache:  cache.NewMemory(),
		Logger: logger,
		Now:    now,
	})
	return engine, fs, nil
}

// playerArg picks the player id argument, or the only loaded player
func playerArg(fs *fileStore, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if id, ok := fs.only(); ok {
		return id, nil
	}
	return "", fmt.Errorf("player id required when more than one snapshot is loaded")
}

func injuryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "injury [player-id]",
		Short: "Assess injury risk",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, fs, err := setup(opts)
			if err != nil {
				return err
			}
			id, err := playerArg(fs, args)
			if err != nil {
				return err
			}
			res, err := engine.PredictInjuryRisk(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}
}

func performanceCmd(opts *options) *cobra.Command {
	var horizon string
	cmd := &cobra.Command{
		Use:   "performance [player-id]",
		Short: "Forecast performance over a horizon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, fs, err := setup(opts)
			if err != nil {
				return err
			}
			id, err := playerArg(fs, args)
			if err != nil {
				return err
			}
			res, err := engine.PredictPerformance(cmd.Context(), id, models.Horizon(horizon))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}
	cmd.Flags().StringVar(&horizon, "horizon", string(models.HorizonNextMatch), "NEXT_MATCH|NEXT_WEEK|NEXT_MONTH|SEASON")
	return cmd
}

func valueCmd(opts *options) *cobra.Command {
	var currency string
	cmd := &cobra.Command{
		Use:   "value [player-id]",
		Short: "Estimate market value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, fs, err := setup(opts)
			if err != nil {
				return err
			}
			id, err := playerArg(fs, args)
			if err != nil {
				return err
			}
			res, err := engine.CalculateMarketValue(cmd.Context(), id, currency)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}
	cmd.Flags().StringVar(&currency, "currency", logic.BaseCurrency, "Currency code ("+strings.Join(logic.SupportedCurrencies(), "|")+")")
	return cmd
}

func compareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <player-id> <player-id>",
		Short: "Compare two players of the same sport",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := setup(opts)
			if err != nil {
				return err
			}
			res, err := engine.ComparePlayers(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}
}

func teamCmd(opts *options) *cobra.Command {
	var feature, horizon, currency string
	cmd := &cobra.Command{
		Use:   "team <team-id>",
		Short: "Run one assessment for every player of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := setup(opts)
			if err != nil {
				return err
			}
			res, err := runTeam(cmd.Context(), engine, args[0], feature, horizon, currency)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, res)
		},
	}
	cmd.Flags().StringVar(&feature, "feature", "injury", "injury|performance|value")
	cmd.Flags().StringVar(&horizon, "horizon", string(models.HorizonNextMatch), "Horizon for --feature performance")
	cmd.Flags().StringVar(&currency, "currency", logic.BaseCurrency, "Currency for --feature value")
	return cmd
}

func runTeam(ctx context.Context, engine *logic.Engine, teamID, feature, horizon, currency string) (any, error) {
	switch strings.ToLower(feature) {
	case "injury":
		return engine.TeamInjuryRisk(ctx, teamID)
	case "performance":
		return engine.TeamPerformance(ctx, teamID, models.Horizon(horizon))
	case "value":
		return engine.TeamMarketValue(ctx, teamID, currency)
	}
	return nil, fmt.Errorf("unknown feature %q (injury|performance|value)", feature)
}

func sportsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sports [sport]",
		Short: "Show the sport registry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				sport, err := models.ParseSport(args[0])
				if err != nil {
					return err
				}
				profile, err := registry.Get(sport)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.format, profile.Summary())
			}
			var all []registry.Summary
			for _, sport := range models.AllSports {
				profile, err := registry.Get(sport)
				if err != nil {
					return err
				}
				all = append(all, profile.Summary())
			}
			return render(cmd.OutOrStdout(), opts.format, all)
		},
	}
}

// render writes v as indented JSON or as YAML with the JSON field names
func render(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case "json":
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "yml":
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (json|yaml)", format)
}

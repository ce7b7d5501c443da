package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rushteam/sayu/config"
	"github.com/rushteam/sayu/core"
	"github.com/rushteam/sayu/engine"
	"github.com/rushteam/sayu/personality"
)

type options struct {
	configPath string
	files      []string
	seed       int64
	verbose    bool
	count      int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "sayu",
		Short:         "Personality-driven artwork recommendations",
		Long:          "sayu aggregates artwork catalogs, scores them against a four-letter personality code and prints annotated recommendations as JSON.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "engine config file (YAML)")
	root.PersistentFlags().StringSliceVar(&opts.files, "file", nil, "catalog file (JSON/YAML), repeatable")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", -1, "random seed for reproducible output (-1 = random)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")
	root.PersistentFlags().IntVarP(&opts.count, "count", "n", 0, "number of recommendations (0 = default)")

	var code string
	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Personalized recommendations for a personality code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, opts, func(ctx context.Context, e *engine.Engine) any {
				return e.PersonalizedRecommendations(ctx, code, opts.count)
			})
		},
	}
	recommendCmd.Flags().StringVarP(&code, "code", "c", "", "personality code, e.g. LAEF")

	themeCmd := queryCmd("theme", "Recommendations for a theme", opts, (*engine.Engine).ThemeRecommendations)
	artistCmd := queryCmd("artist", "Recommendations for an artist (substring match)", opts, (*engine.Engine).ArtistRecommendations)
	moodCmd := queryCmd("mood", "Recommendations for a mood", opts, (*engine.Engine).MoodRecommendations)

	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Build the artwork pool and print its metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(cmd, opts, func(ctx context.Context, e *engine.Engine) any {
				return e.Pool(ctx).Metadata
			})
		},
	}

	codesCmd := &cobra.Command{
		Use:   "codes",
		Short: "List the 16 personality codes and their preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			type entry struct {
				Code string `json:"code"`
				personality.Preferences
			}
			out := make([]entry, 0, 16)
			for _, c := range personality.Codes() {
				p, _ := personality.Lookup(c)
				out = append(out, entry{Code: c, Preferences: p})
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	root.AddCommand(recommendCmd, themeCmd, artistCmd, moodCmd, poolCmd, codesCmd)
	return root
}

func queryCmd(use, short string, opts *options, fn func(*engine.Engine, context.Context, string, int) []core.Recommendation) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <value>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd, opts, func(ctx context.Context, e *engine.Engine) any {
				return fn(e, ctx, args[0], opts.count)
			})
		},
	}
}

// withEngine 装配引擎、执行 fn 并把结果以 JSON 写到标准输出。
func withEngine(cmd *cobra.Command, opts *options, fn func(context.Context, *engine.Engine) any) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zerolog.Nop()
	if opts.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	rt, err := cfg.Build(ctx, logger)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer rt.Close()

	return writeJSON(cmd.OutOrStdout(), fn(ctx, rt.Engine))
}

// loadConfig 读取 --config；未指定来源时使用 --file 与内置精选集。
func loadConfig(opts *options) (*config.EngineConfig, error) {
	cfg := &config.EngineConfig{}
	if opts.configPath != "" {
		loaded, err := config.LoadEngineConfig(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	for _, f := range opts.files {
		cfg.Sources = append(cfg.Sources, config.SourceConfig{Type: "file", Path: f})
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = []config.SourceConfig{{Type: "static"}}
	}
	if opts.seed >= 0 {
		seed := uint64(opts.seed)
		cfg.Seed = &seed
	}
	return cfg, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

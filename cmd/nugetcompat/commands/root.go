// Package commands wires the compatibility engine into the CLI.
package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/willibrandon/nugetcompat/compat"
	"github.com/willibrandon/nugetcompat/httpclient"
	"github.com/willibrandon/nugetcompat/observability"
	"github.com/willibrandon/nugetcompat/registry"
	"github.com/willibrandon/nugetcompat/resilience"
)

var rootCmd = &cobra.Command{
	Use:   "nugetcompat",
	Short: "NuGet package compatibility checker",
	Long: `nugetcompat checks the NuGet package references of a .NET project
against its target framework and reports incompatible, version-mismatched,
and deprecated packages, with upgrade suggestions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var (
	configFile string
	verbose    bool
	offline    bool
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// AddCommand adds a subcommand to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default .nugetcompat.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip registry lookups, use local rules only")
}

// loadOptions builds engine options from the optional config file, then
// applies flag overrides. Flags always win.
func loadOptions() (*compat.Options, error) {
	v := viper.New()
	v.SetDefault("enabled", true)
	v.SetDefault("remote", true)
	v.SetDefault("cache", true)
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("request_timeout", "5s")
	v.SetDefault("max_parallel", compat.DefaultMaxParallel)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(".nugetcompat")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	opts := &compat.Options{
		Enabled:        v.GetBool("enabled"),
		RemoteEnabled:  v.GetBool("remote"),
		CacheEnabled:   v.GetBool("cache"),
		CacheTTL:       durationOrDefault(v.GetDuration("cache_ttl"), compat.DefaultCacheTTL),
		IgnorePatterns: v.GetStringSlice("ignore"),
		RequestTimeout: durationOrDefault(v.GetDuration("request_timeout"), compat.DefaultRequestTimeout),
		MaxParallel:    v.GetInt("max_parallel"),
	}
	if offline {
		opts.RemoteEnabled = false
	}
	return opts, nil
}

func durationOrDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// newResolver assembles the engine from options.
func newResolver(opts *compat.Options) *compat.Resolver {
	level := observability.InfoLevel
	if verbose {
		level = observability.DebugLevel
	}
	logger := observability.NewLogger(os.Stderr, level)

	var remote compat.RemoteSource
	if opts.RemoteEnabled {
		limiterCfg := resilience.DefaultTokenBucketConfig()
		hc := httpclient.NewClient(&httpclient.Config{
			Timeout:           opts.RequestTimeout,
			Logger:            logger,
			EnableTracing:     os.Getenv("NUGETCOMPAT_TRACE_EXPORTER") != "",
			RateLimiterConfig: &limiterCfg,
		})
		remote = registry.NewClient(hc, &registry.Config{Logger: logger})
	}

	return compat.NewResolver(opts, nil, remote, logger)
}

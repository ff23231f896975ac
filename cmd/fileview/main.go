package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/studiowebux/fileview/internal/cli"
	"github.com/studiowebux/fileview/internal/filecache"
	"github.com/studiowebux/fileview/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fileview [file]",
	Short: "fileview - terminal file viewer with a local cache",
	Long: `fileview opens text files in a syntax highlighted viewer with tabs.

Every opened file is cached in a local SQLite database, so recent files can be
reopened later even when the original has moved or changed.

Examples:
  fileview                      # Start the viewer
  fileview main.go              # Start with main.go open
  fileview recent -o json       # List cached files as JSON
  fileview show main.go         # Print the newest cached main.go
  fileview add *.md             # Cache files without opening the viewer
  fileview prune --max-age 720h # Drop cached files older than 30 days`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tui.RunOptions{Home: flagHome, LogLevel: flagLogLevel}
		if len(args) > 0 {
			opts.InitialFile = args[0]
		}
		return tui.Run(opts)
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently cached files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(func(env *cli.Env) error {
			return cli.Recent(env, cli.RecentOptions{Limit: flagLimit, OutputFormat: flagOutput})
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the newest cached file with the given name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(func(env *cli.Env) error {
			return cli.Show(env, cli.ShowOptions{Name: args[0], Plain: flagPlain})
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Cache files without opening the viewer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(func(env *cli.Env) error {
			return cli.Add(cmd.Context(), env, args)
		})
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the cache retention policy",
	Long: `Delete cached files beyond the retention limits.

Limits default to cache.max_records and cache.max_age from config.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(func(env *cli.Env) error {
			policy := filecache.PolicyFromSettings(env.Settings.Cache)
			if cmd.Flags().Changed("max-records") {
				policy.MaxRecords = flagMaxRecords
			}
			if cmd.Flags().Changed("max-age") {
				policy.MaxAge = flagMaxAge
			}
			return cli.Prune(env, policy)
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cli.Clear)
	},
}

// Global flags
var (
	flagHome     string
	flagLogLevel string
)

// Flags for subcommands
var (
	flagLimit      int
	flagOutput     string
	flagPlain      bool
	flagMaxRecords int
	flagMaxAge     time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "Configuration directory (default ~/.fileview, or $FILEVIEW_HOME)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error/quiet)")

	recentCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Number of files to list (default recent.limit)")
	recentCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	showCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print contents without highlighting")

	pruneCmd.Flags().IntVar(&flagMaxRecords, "max-records", 0, "Keep at most this many records")
	pruneCmd.Flags().DurationVar(&flagMaxAge, "max-age", 0, "Drop records older than this (e.g. 720h)")

	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(clearCmd)
}

// withEnv opens the shared command environment around fn
func withEnv(fn func(env *cli.Env) error) error {
	env, err := cli.Open(flagHome, flagLogLevel)
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

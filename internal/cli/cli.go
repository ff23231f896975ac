package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/studiowebux/fileview/internal/config"
	"github.com/studiowebux/fileview/internal/filecache"
	"github.com/studiowebux/fileview/internal/highlight"
	"github.com/studiowebux/fileview/internal/logging"
	"github.com/studiowebux/fileview/internal/store"
	"github.com/studiowebux/fileview/internal/types"
	"github.com/studiowebux/fileview/internal/workspace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// maxConcurrentReads bounds the reads of Add
const maxConcurrentReads = 4

// Env holds what the non-interactive commands share
type Env struct {
	Settings config.Settings
	Logger   *zap.Logger
	Cache    *filecache.Manager
	Out      io.Writer
}

// Open initializes the configuration directory, the logger and the cache
func Open(home, logLevel string) (*Env, error) {
	if err := config.Initialize(home); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	settings, err := config.LoadSettings(config.SettingsFile)
	if err != nil {
		return nil, err
	}
	level := settings.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	logger, err := logging.New(level, config.LogFile)
	if err != nil {
		return nil, err
	}

	cache, err := filecache.NewManager(config.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	return &Env{Settings: settings, Logger: logger, Cache: cache, Out: os.Stdout}, nil
}

// Close releases the cache and flushes the logger
func (e *Env) Close() error {
	err := e.Cache.Close()
	_ = e.Logger.Sync()
	return err
}

// RecentOptions contains options for listing recent files
type RecentOptions struct {
	Limit        int
	OutputFormat string // json, yaml, text
}

// Recent prints the most recently modified cache records
func Recent(env *Env, opts RecentOptions) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = env.Settings.Recent.Limit
	}

	records, err := env.Cache.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to list recent files: %w", err)
	}

	output, err := formatRecords(records, opts.OutputFormat, time.Now())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = io.WriteString(env.Out, output)
	return err
}

// recordSummary is a record without its contents
type recordSummary struct {
	ID           int64     `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Path         string    `json:"path,omitempty" yaml:"path,omitempty"`
	Type         string    `json:"type" yaml:"type"`
	Size         int       `json:"size" yaml:"size"`
	LastModified time.Time `json:"lastModified" yaml:"lastModified"`
}

// formatRecords formats records based on the output format
func formatRecords(records []types.FileRecord, format string, now time.Time) (string, error) {
	summaries := make([]recordSummary, len(records))
	for i, rec := range records {
		summaries[i] = recordSummary{
			ID:           rec.ID,
			Name:         rec.Name,
			Path:         rec.Path,
			Type:         rec.Type,
			Size:         len(rec.Contents),
			LastModified: rec.LastModified,
		}
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(summaries)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		if len(summaries) == 0 {
			return "No cached files\n", nil
		}
		var sb strings.Builder
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSIZE\tMODIFIED")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Type, s.Size, age(now.Sub(s.LastModified)))
		}
		if err := tw.Flush(); err != nil {
			return "", err
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}
}

func age(d time.Duration) string {
	if d < time.Minute {
		return "just now"
	}
	return d.Truncate(time.Minute).String() + " ago"
}

// ShowOptions contains options for printing a cached file
type ShowOptions struct {
	Name  string
	Plain bool
}

// Show prints the newest cached record named opts.Name
func Show(env *Env, opts ShowOptions) error {
	rec, err := env.Cache.FirstByName(opts.Name)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", opts.Name, err)
	}
	if rec == nil {
		return fmt.Errorf("%s is not cached", opts.Name)
	}

	if opts.Plain {
		_, err = io.WriteString(env.Out, rec.Contents)
		return err
	}

	v := env.Settings.Viewer
	renderer := highlight.New(v.Theme, v.LineNumbers, false)
	lang := highlight.LanguageFor(rec.Name, rec.Type, rec.Contents)
	_, err = io.WriteString(env.Out, renderer.Render(rec.Contents, lang, 0)+"\n")
	return err
}

// Add ingests files into the cache. Reads run concurrently; completions are
// applied one at a time in argument order.
func Add(ctx context.Context, env *Env, paths []string) error {
	if len(paths) == 0 {
		return workspace.ErrNoFileSelected
	}

	ws := workspace.New(store.New(), env.Cache, workspace.Options{
		Logger:      env.Logger,
		RecentLimit: env.Settings.Recent.Limit,
		Retention:   filecache.PolicyFromSettings(env.Settings.Cache),
	})
	defer ws.Close()

	pending := make([]workspace.PendingRead, 0, len(paths))
	for _, path := range paths {
		p, err := ws.Select(path)
		if err != nil {
			return err
		}
		pending = append(pending, p)
	}

	results := make([]workspace.ReadResult, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, p := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = ws.Read(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs []error
	for _, res := range results {
		if err := ws.Complete(res); err != nil {
			errs = append(errs, err)
			fmt.Fprintf(env.Out, "failed  %s: %v\n", res.Document.Name, err)
			continue
		}
		fmt.Fprintf(env.Out, "added   %s (%d bytes)\n", res.Document.Name, len(res.Contents))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(errs), len(results), errors.Join(errs...))
	}
	return nil
}

// Prune applies a retention policy and reports what is left
func Prune(env *Env, policy filecache.RetentionPolicy) error {
	if policy.MaxRecords <= 0 && policy.MaxAge <= 0 {
		return fmt.Errorf("no retention limit set (use --max-records or --max-age)")
	}

	removed, err := env.Cache.Prune(policy, time.Now())
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	remaining, err := env.Cache.GetCount()
	if err != nil {
		return fmt.Errorf("failed to count cached files: %w", err)
	}

	env.Logger.Info("cache pruned", zap.Int64("removed", removed), zap.Int("remaining", remaining))
	fmt.Fprintf(env.Out, "Pruned %d records, %d remaining\n", removed, remaining)
	return nil
}

// Clear deletes every cached record
func Clear(env *Env) error {
	count, err := env.Cache.GetCount()
	if err != nil {
		return fmt.Errorf("failed to count cached files: %w", err)
	}
	if err := env.Cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	env.Logger.Info("cache cleared", zap.Int("removed", count))
	fmt.Fprintf(env.Out, "Removed %d records\n", count)
	return nil
}

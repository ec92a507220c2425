// Command streamfinder generates Stream Finder configs from the command line.
//
// Usage:
//
//	streamfinder generate --url https://ottoneu.fangraphs.com/sixpicks/view/123 --base-config base.json
//	streamfinder generate --file roster.html --base-config base.json --out ./configs
//	streamfinder scrape --url https://ottoneu.fangraphs.com/sixpicks/view/123
//	streamfinder lookup "Aaron Judge"
//	streamfinder config save base.json
//	streamfinder config show
//	streamfinder config clear
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/alex-monroe/six-picks-stream-finder/internal/baseconfig"
	"github.com/alex-monroe/six-picks-stream-finder/internal/config"
	"github.com/alex-monroe/six-picks-stream-finder/internal/db"
	"github.com/alex-monroe/six-picks-stream-finder/internal/notifications"
	"github.com/alex-monroe/six-picks-stream-finder/internal/provider/mlb"
	"github.com/alex-monroe/six-picks-stream-finder/internal/roster"
	"github.com/alex-monroe/six-picks-stream-finder/internal/session"
	"github.com/alex-monroe/six-picks-stream-finder/internal/store"
	"github.com/alex-monroe/six-picks-stream-finder/internal/streamfinder"
	"github.com/alex-monroe/six-picks-stream-finder/internal/workflow"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "streamfinder",
		Short:        "Six Picks Stream Finder config generator",
		SilenceUsage: true,
	}

	root.AddCommand(generateCmd())
	root.AddCommand(scrapeCmd())
	root.AddCommand(lookupCmd())
	root.AddCommand(configCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// generate command
// --------------------------------------------------------------------------

func generateCmd() *cobra.Command {
	var (
		pageURL    string
		file       string
		baseConfig string
		outDir     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a config from a Six Picks roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (pageURL == "") == (file == "") {
				return errors.New("exactly one of --url or --file is required")
			}
			return withStore(func(ctx context.Context, cfg *config.Config, kv store.KV) error {
				base, err := readBaseConfig(ctx, kv, baseConfig)
				if err != nil {
					return err
				}

				sink := notifications.NewLogSink(logger)
				gen := streamfinder.NewGenerator(mlb.NewClient(cfg.MLBAPIBaseURL, cfg.HTTPTimeout, logger), sink, logger)
				fetcher := roster.NewFetcher(cfg.ScraperUserAgent, cfg.HTTPTimeout, logger)
				// The CLI owns its run, so the pending context lives in memory.
				coord := workflow.New(session.NewSlot(store.NewMemory(), logger), gen, fetcher, cfg.PagePrefixes, sink, logger)
				ctx = notifications.WithRunID(ctx, notifications.NewRunID())

				var art *streamfinder.Artifact
				if pageURL != "" {
					art, err = coord.GenerateFromPage(ctx, pageURL, base)
				} else {
					art, err = generateFromFile(ctx, coord, file, base)
				}
				if err != nil {
					return err
				}

				if outDir == "" {
					outDir = cfg.OutputDir
				}
				path := filepath.Join(outDir, art.Filename)
				if err := os.WriteFile(path, []byte(art.Content), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				logger.Info("Config written", "path", path, "players_added", art.Added)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "Six Picks view or createEntry page URL")
	cmd.Flags().StringVar(&file, "file", "", "Saved HTML of a Six Picks page")
	cmd.Flags().StringVar(&baseConfig, "base-config", "", "Base config JSON file (default: the saved base config)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default: OUTPUT_DIR)")
	return cmd
}

// generateFromFile runs the workflow against a saved page.
func generateFromFile(ctx context.Context, coord *workflow.Coordinator, path, base string) (*streamfinder.Artifact, error) {
	players, err := parseFile(path)
	if err != nil {
		_ = coord.ExtractionFailed(ctx, roster.ExtractionFailedReason)
		return nil, err
	}
	if err := coord.SetBaseConfigContext(ctx, base); err != nil {
		return nil, err
	}
	return coord.ProcessPlayers(ctx, players)
}

// readBaseConfig returns the contents of path, or the saved base config when
// path is empty.
func readBaseConfig(ctx context.Context, kv store.KV, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read base config: %w", err)
		}
		return string(data), nil
	}
	saved, err := baseconfig.NewRepository(kv, logger).Load(ctx)
	if err != nil {
		if errors.Is(err, baseconfig.ErrNotSaved) {
			return "", errors.New("no base config saved: pass --base-config or run 'streamfinder config save'")
		}
		return "", err
	}
	return saved.Content, nil
}

// --------------------------------------------------------------------------
// scrape command
// --------------------------------------------------------------------------

func scrapeCmd() *cobra.Command {
	var pageURL, file string
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Print the players picked on a Six Picks page",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (pageURL == "") == (file == "") {
				return errors.New("exactly one of --url or --file is required")
			}
			var (
				players []streamfinder.PlayerPick
				err     error
			)
			if file != "" {
				players, err = parseFile(file)
			} else {
				ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
				defer cancel()
				cfg, cerr := config.Load()
				if cerr != nil {
					return fmt.Errorf("load config: %w", cerr)
				}
				if err := roster.ValidatePageURL(pageURL, cfg.PagePrefixes); err != nil {
					return err
				}
				players, err = roster.NewFetcher(cfg.ScraperUserAgent, cfg.HTTPTimeout, logger).Fetch(ctx, pageURL)
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(players)
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "Six Picks view or createEntry page URL")
	cmd.Flags().StringVar(&file, "file", "", "Saved HTML of a Six Picks page")
	return cmd
}

func parseFile(path string) ([]streamfinder.PlayerPick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return roster.Parse(f)
}

// --------------------------------------------------------------------------
// lookup command
// --------------------------------------------------------------------------

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <name>",
		Short: "Resolve a player name to an MLB id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			res := mlb.NewClient(cfg.MLBAPIBaseURL, cfg.HTTPTimeout, logger).Resolve(ctx, args[0])
			if res.Err != nil {
				return res.Err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", args[0], res.Outcome, res.ID)
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// config command
// --------------------------------------------------------------------------

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the saved base config (requires DATABASE_URL)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "save <file>",
		Short: "Save a base config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return withDatabase(func(ctx context.Context, repo *baseconfig.Repository) error {
				return repo.Save(ctx, string(data))
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved base config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context, repo *baseconfig.Repository) error {
				saved, err := repo.Load(ctx)
				if err != nil {
					return err
				}
				logger.Info("Saved base config", "updated_at", saved.UpdatedAt)
				fmt.Fprintln(cmd.OutOrStdout(), saved.Content)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the saved base config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(ctx context.Context, repo *baseconfig.Repository) error {
				return repo.Delete(ctx)
			})
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withStore handles config loading, storage selection, and context
// cancellation. Without DATABASE_URL the store is process memory.
func withStore(fn func(ctx context.Context, cfg *config.Config, kv store.KV) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasDatabase() {
		return fn(ctx, cfg, store.NewMemory())
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, store.NewPostgres(pool.Pool))
}

// withDatabase is withStore for commands that only make sense with a
// persistent store.
func withDatabase(fn func(ctx context.Context, repo *baseconfig.Repository) error) error {
	return withStore(func(ctx context.Context, cfg *config.Config, kv store.KV) error {
		if !cfg.HasDatabase() {
			return errors.New("DATABASE_URL is required to keep a saved base config")
		}
		return fn(ctx, baseconfig.NewRepository(kv, logger))
	})
}

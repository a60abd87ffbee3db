// NJ Trades: congress, insider and 13F disclosure dashboard backend.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jaideeprtx/nj-trades/api"
	"github.com/jaideeprtx/nj-trades/internal/config"
	"github.com/jaideeprtx/nj-trades/internal/ingest"
	"github.com/jaideeprtx/nj-trades/internal/ingest/sec13f"
	"github.com/jaideeprtx/nj-trades/internal/logging"
	"github.com/jaideeprtx/nj-trades/internal/notify"
	"github.com/jaideeprtx/nj-trades/internal/scheduler"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set by PersistentPreRunE.
var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "njtrades",
	Short: "NJ Trades: congress, insider and 13F disclosure tracker",
	Long: `NJ Trades ingests congressional stock-trade disclosures, SEC Form-4
insider filings and 13F institutional holdings, stores them in SQLite (or
Postgres) and serves them to the dashboard over HTTP and a live websocket.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("NJ Trades %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, live channel and ingestion schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		if cfg.Ingest.SeedOnStart {
			n, err := sec13f.Seed(ctx, a.store, a.fixtures.Portfolios)
			if err != nil {
				return fmt.Errorf("seed sample holdings: %w", err)
			}
			logger.Info("seeded sample holdings", zap.Int("holdings", n))
		}

		hub := notify.NewHub(logger.Named("notify"))
		srv := api.NewServer(cfg, a.store, hub, a.fixtures.Portfolios, logger.Named("http"))

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			hub.Run(ctx)
			return nil
		})
		g.Go(func() error {
			return srv.ListenAndServe(ctx)
		})

		if cfg.Schedule.Enabled {
			sched, err := scheduler.FromConfig(cfg.Schedule, hub, logger.Named("scheduler"),
				a.insider, a.congress, a.sec13f)
			if err != nil {
				return err
			}
			if err := sched.Start(ctx); err != nil {
				return err
			}
			g.Go(func() error {
				<-ctx.Done()
				sched.Stop()
				return nil
			})
		} else {
			logger.Info("ingestion schedule disabled")
		}

		return g.Wait()
	},
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:       "fetch [insider|congress|13f]",
	Short:     "Run one ingestion cycle for a source",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(ingest.SourceInsider), string(ingest.SourceCongress), string(ingest.Source13F)},
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		adapter, err := a.adapter(ingest.Source(args[0]))
		if err != nil {
			return err
		}

		sched := scheduler.New(discard{}, 0, logger.Named("scheduler"))
		res, err := sched.Run(ctx, adapter)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d fetched, %d new, %d dropped\n", res.Source, res.Fetched, res.Created, res.Dropped)
		return nil
	},
}

func init() {
	fetchCmd.Flags().Duration("timeout", 5*time.Minute, "abort the cycle after this long")
}

// discard is a notifier for one-off runs with no live clients.
type discard struct{}

func (discard) Broadcast(ingest.Source, any) {}

// --- Seed Command ---

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample institutional portfolios",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := sec13f.Seed(cmd.Context(), a.store, a.fixtures.Portfolios)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d holdings across %d institutions\n", n, len(a.fixtures.Portfolios))
		return nil
	},
}

// --- Stats Command ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts per table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  NJ Trades: Store")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Database:        %s\n", describeDatabase(cfg.Database))
		fmt.Printf("  Institutions:    %d\n", stats.InstitutionCount)
		fmt.Printf("  Holdings:        %d\n", stats.HoldingCount)
		fmt.Printf("  Congress trades: %d\n", stats.CongressTradeCount)
		fmt.Printf("  Insider trades:  %d\n", stats.InsiderTradeCount)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Config Command ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(cfg.Redacted())
		if err != nil {
			return err
		}
		fmt.Print(string(out))

		fmt.Println("\n# secrets")
		for _, s := range config.CheckSecrets(cfg) {
			status := "not set"
			if s.IsSet {
				status = fmt.Sprintf("set (%s: %s)", s.Source, s.Masked)
			}
			fmt.Printf("#   %-16s %s\n", s.Name+":", status)
		}
		return nil
	},
}

func describeDatabase(db config.DatabaseConfig) string {
	if db.Driver == "postgres" {
		return "postgres " + config.Config{Database: db}.Redacted().Database.DSN
	}
	return "sqlite " + db.Path
}

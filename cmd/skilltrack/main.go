package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avezina/skilltrack/internal/auth"
	"github.com/avezina/skilltrack/internal/config"
	"github.com/avezina/skilltrack/internal/export"
	"github.com/avezina/skilltrack/internal/storage"
	"github.com/avezina/skilltrack/internal/tracker"
	"github.com/avezina/skilltrack/internal/tui"
	"github.com/avezina/skilltrack/internal/util"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:     "skilltrack",
		Short:   "Track practice time across skills",
		Long:    "Skilltrack is a terminal practice tracker: start a timer per skill,\nreview streaks and targets, and export your history.",
		Version: tui.AppVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, store, svc, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer store.Close()
			return tui.Run(ctx, store, svc, util.ExportDir(config.AppName), cfg.DailyReminder)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to config file")

	root.AddCommand(newLoginCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newReportCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("skilltrack v%s\n", tui.AppVersion)
		},
	})
	return root
}

// bootstrap opens the store, seeds the demo account and restores theme
// preferences. Shared by every subcommand.
func bootstrap(configPath string) (context.Context, config.Config, *storage.Store, *auth.Service, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	_ = stop // released on process exit

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, config.Config{}, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = util.DataDir(config.AppName)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, config.Config{}, nil, nil, fmt.Errorf("creating data dir: %w", err)
	}

	kv, err := storage.Open(ctx, filepath.Join(dataDir, config.DBFileName))
	if err != nil {
		return nil, config.Config{}, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	store := storage.New(kv)

	svc := auth.NewService(store)
	if err := svc.EnsureDemoUser(ctx); err != nil {
		util.LogError("seeding demo user", err)
	}
	tui.SetTheme(cfg.Theme)
	return ctx, cfg, store, svc, nil
}

// loadManager resolves the signed-in account for non-TUI subcommands.
func loadManager(ctx context.Context, store *storage.Store, svc *auth.Service) (*tracker.Manager, error) {
	user, err := svc.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("not signed in; run 'skilltrack login' first")
	}
	mgr := tracker.NewManager(store, user.ID)
	if err := mgr.Load(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}

func newLoginCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in without opening the TUI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, store, svc, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			email := ""
			if len(args) == 1 {
				email = args[0]
			} else {
				fmt.Print("Email: ")
				if _, err := fmt.Scanln(&email); err != nil {
					return err
				}
			}
			password, err := promptForPassword("Password: ")
			if err != nil {
				return err
			}
			user, err := svc.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func newExportCmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the signed-in user's data as JSON or CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, store, svc, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			mgr, err := loadManager(ctx, store, svc)
			if err != nil {
				return err
			}
			snap := export.Snapshot{
				Categories: mgr.Categories(),
				Sessions:   mgr.Sessions(),
				Settings:   mgr.Settings(),
			}
			dir := util.ExportDir(config.AppName)

			var path string
			switch strings.ToLower(format) {
			case "json":
				path, err = export.JSONToFile(dir, snap, time.Now())
			case "csv":
				path, err = export.CSVToFile(dir, snap, time.Now())
			default:
				return fmt.Errorf("unknown format %q (want json or csv)", format)
			}
			if err != nil {
				return err
			}
			fmt.Println("Export written to", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format: json or csv")
	return cmd
}

func newReportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Generate a weekly PDF practice report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, store, svc, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer store.Close()

			mgr, err := loadManager(ctx, store, svc)
			if err != nil {
				return err
			}
			path, err := export.PDFToFile(util.ExportDir(config.AppName), export.Snapshot{
				Categories: mgr.Categories(),
				Sessions:   mgr.Sessions(),
				Settings:   mgr.Settings(),
			}, time.Now())
			if err != nil {
				return err
			}
			fmt.Println("PDF report written to", path)
			return nil
		},
	}
}

func promptForPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(pass)), err
}

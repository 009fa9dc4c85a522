package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"crux/internal/bootstrap"
	"crux/internal/contract"
	"crux/internal/fakeapi"
	sessiondto "crux/internal/modules/session/dto"
	"crux/internal/platform/clock"
	"crux/internal/platform/config"
	"crux/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir  string
	baseURL  string
	timeout  time.Duration
	logLevel string
	debug    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "crux",
		Short:         "Climbing session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory for local state and logs")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "backend base url (overrides config)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (overrides config)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "shortcut for --log-level debug")

	root.AddCommand(newLoginCmd(flags))
	root.AddCommand(newLogoutCmd(flags))
	root.AddCommand(newWhoAmICmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newScanCmd(flags))
	root.AddCommand(newGradesCmd())
	root.AddCommand(newConfigCmd(flags))
	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newDevServerCmd(flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.Load(flags.dataDir)
	if err != nil {
		return config.Config{}, err
	}
	level := flags.logLevel
	if flags.debug {
		level = "debug"
	}
	if err := cfg.Override(flags.baseURL, flags.timeout, level); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadApp configures stderr logging and wires the application. The caller
// must Close the returned app.
func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.LogLevel, os.Stderr); err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func withApp(flags *globalFlags, run func(cmd *cobra.Command, args []string, app *bootstrap.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(flags)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				log.Warn().Err(err).Msg("close local stores")
			}
		}()
		return run(cmd, args, app)
	}
}

// ─── identity ────────────────────────────────────────────────────────────────

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var (
		idToken   string
		dev       bool
		userID    string
		firstName string
		lastName  string
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a Google id token, or as a development user",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if dev == (idToken != "") {
				return errors.New("pass exactly one of --id-token or --dev")
			}
			if dev {
				out, err := app.IdentityCLI.DevLogin(cmd.Context(), userID, firstName, lastName)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s) [dev]\n", out.DisplayName, out.UserID)
				return nil
			}
			out, err := app.IdentityCLI.Login(cmd.Context(), idToken)
			if err != nil {
				return err
			}
			welcome := "signed in"
			if out.IsNewUser {
				welcome = "welcome"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", welcome, out.DisplayName, out.UserID)
			return nil
		}),
	}
	cmd.Flags().StringVar(&idToken, "id-token", "", "Google id token to exchange")
	cmd.Flags().BoolVar(&dev, "dev", false, "sign in as a local development user")
	cmd.Flags().StringVar(&userID, "user-id", "", "development user id")
	cmd.Flags().StringVar(&firstName, "first", "", "development first name")
	cmd.Flags().StringVar(&lastName, "last", "", "development last name")
	return cmd
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in user",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			if err := app.IdentityCLI.Logout(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		}),
	}
}

func newWhoAmICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.IdentityCLI.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", out.DisplayName, out.UserID)
			if out.Email != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "email: %s\n", out.Email)
			}
			return nil
		}),
	}
}

// ─── session ─────────────────────────────────────────────────────────────────

func newSessionCmd(flags *globalFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Today's climbing session"}

	snapshotCmd := func(use, short string, call func(context.Context, *bootstrap.App) (sessiondto.SnapshotOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
				out, err := call(cmd.Context(), app)
				if err != nil {
					return err
				}
				printSnapshot(cmd.OutOrStdout(), out)
				return nil
			}),
		}
	}
	session.AddCommand(
		snapshotCmd("start", "Start today's session", func(ctx context.Context, a *bootstrap.App) (sessiondto.SnapshotOutput, error) {
			return a.SessionCLI.Start(ctx)
		}),
		snapshotCmd("end", "End today's session", func(ctx context.Context, a *bootstrap.App) (sessiondto.SnapshotOutput, error) {
			return a.SessionCLI.End(ctx)
		}),
		snapshotCmd("show", "Show today's session", func(ctx context.Context, a *bootstrap.App) (sessiondto.SnapshotOutput, error) {
			return a.SessionCLI.Show(ctx)
		}),
	)

	var (
		status   string
		attempts int
		duration int
	)
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a climb in today's session",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			out, err := app.SessionCLI.Log(cmd.Context(), status, attempts, duration)
			if err != nil {
				return err
			}
			printSnapshot(cmd.OutOrStdout(), out)
			return nil
		}),
	}
	logCmd.Flags().StringVar(&status, "status", string(contract.ClimbStatusCompleted), "ATTEMPTED|COMPLETED|PROJECT|FLASH|ONSIGHT")
	logCmd.Flags().IntVar(&attempts, "attempts", 1, "number of attempts")
	logCmd.Flags().IntVar(&duration, "duration", 0, "climb duration in seconds")

	var limit int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List climbs logged from this machine",
		RunE: withApp(flags, func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
			entries, err := app.SessionCLI.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no climbs logged")
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s attempts=%d duration=%ds climbs=%d sends=%d\n",
					e.LoggedAt.Local().Format("2006-01-02 15:04"), e.Status, e.Attempts, e.DurationSeconds, e.Climbs, e.Sends)
			}
			return nil
		}),
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")

	var exportLimit int
	exportCmd := &cobra.Command{
		Use:   "export <logbook.md>",
		Short: "Write logged climbs into a markdown logbook, keeping hand-written notes",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.SessionCLI.Export(cmd.Context(), args[0], exportLimit)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d climbs (%d sends) to %s\n", out.Entries, out.Sends, out.Path)
			return nil
		}),
	}
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum number of climbs (default 500)")

	session.AddCommand(logCmd, historyCmd, exportCmd)
	return session
}

func printSnapshot(w io.Writer, out sessiondto.SnapshotOutput) {
	_, _ = fmt.Fprintf(w, "climbs=%d sends=%d time=%s active=%t\n", out.Climbs, out.Sends, out.Time, out.IsActive)
}

// ─── route scan ──────────────────────────────────────────────────────────────

func newScanCmd(flags *globalFlags) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Upload a wall photo and save the generated route overlay",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
			out, err := app.RouteCLI.Scan(cmd.Context(), args[0], outPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "overlay=%s size=%dx%d uploaded=%dB\n", out.OutputPath, out.Width, out.Height, out.UploadBytes)
			return nil
		}),
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output PNG path (default: <data-dir>/routes/<image>-route.png)")
	return cmd
}

func newGradesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grades",
		Short: "List bouldering grades with difficulty and tier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, g := range contract.Grades() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-4s difficulty=%-2d tier=%d color=%s\n", g, g.Difficulty(), g.Tier(), g.Color())
			}
			return nil
		},
	}
}

// ─── config ──────────────────────────────────────────────────────────────────

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Inspect or persist settings"}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "data_dir=%s\n", cfg.DataDir)
			_, _ = fmt.Fprintf(w, "base_url=%s\n", cfg.BaseURL)
			_, _ = fmt.Fprintf(w, "timeout=%s\n", cfg.Timeout)
			_, _ = fmt.Fprintf(w, "log_level=%s\n", cfg.LogLevel)
			_, _ = fmt.Fprintf(w, "settings=%s\n", cfg.SettingsPath())
			return nil
		},
	})
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the effective base url, timeout and log level to config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", cfg.SettingsPath())
			return nil
		},
	})
	return cfgCmd
}

// ─── terminal ui ─────────────────────────────────────────────────────────────

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the crux terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			closer, err := logging.SetupFile(cfg.LogLevel, cfg.LogPath)
			if err != nil {
				return err
			}
			defer closer.Close()

			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

// ─── development backend ─────────────────────────────────────────────────────

func newDevServerCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:    "devserver",
		Short:  "Serve an in-memory backend for local development",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := flags.logLevel
			if flags.debug {
				level = "debug"
			}
			if err := logging.Setup(level, os.Stderr); err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           fakeapi.New(clock.SystemClock{}).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("dev backend listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "listen address")
	return cmd
}

// Package cli is the operator command line: data mode, API token, audit log
// and store maintenance against the same state backend as the server.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/models"

	"github.com/spf13/cobra"
)

// Opener builds the application for one command run.
type Opener func(ctx context.Context) (*app.App, error)

// FromEnv loads config the same way the server does.
func FromEnv(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return app.Build(ctx, cfg, log)
}

var cliActor = models.Actor{ID: "cli", Name: "backofficectl", Role: models.RoleAdmin}

func BuildCLI(open Opener) *cobra.Command {
	root := &cobra.Command{
		Use:           "backofficectl",
		Short:         "Maintenance commands for the back-office data layer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		buildModeCommand(open),
		buildTokenCommand(open),
		buildAuditCommand(open),
		buildFetchCommand(open),
		buildStoresCommand(open),
		buildOperatorCommand(open),
	)
	return root
}

// withApp открывает приложение и закрывает его после команды.
func withApp(cmd *cobra.Command, open Opener, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := open(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx, a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func buildModeCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{Use: "mode", Short: "Show or switch the data mode"}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current data mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				cfg := a.Mode.Current()
				fmt.Fprintf(cmd.OutOrStdout(), "mode: %s\napi:  %s\nlive: %t\n", cfg.DataMode, cfg.APIBaseURL, a.Mode.IsLiveMode())
				return nil
			})
		},
	})

	var apiURL string
	set := &cobra.Command{
		Use:   "set <demo|live>",
		Short: "Persist a new data mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				cfg := a.Mode.Current()
				cfg.DataMode = args[0]
				if cmd.Flags().Changed("api-url") {
					cfg.APIBaseURL = apiURL
				}
				if err := a.Mode.Set(ctx, cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "data mode set to %s\n", a.Mode.Current().DataMode)
				return nil
			})
		},
	}
	set.Flags().StringVar(&apiURL, "api-url", "", "API base URL for live mode")
	cmd.AddCommand(set)
	return cmd
}

func buildTokenCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Manage the API bearer token"}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store the bearer token used in live mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				if strings.TrimSpace(args[0]) == "" {
					return fmt.Errorf("token is empty")
				}
				if err := a.Tokens.Set(ctx, strings.TrimSpace(args[0])); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "token saved")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				if err := a.Tokens.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "token cleared")
				return nil
			})
		},
	})
	return cmd
}

func buildAuditCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{Use: "audit", Short: "Inspect or clear the audit log"}

	var limit int
	var module string
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the newest audit entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "TIME\tACTOR\tACTION\tMODULE\tRESOURCE")
				n := 0
				for _, e := range a.Audit.Entries() {
					if module != "" && string(e.Module) != module {
						continue
					}
					if limit > 0 && n >= limit {
						break
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Timestamp, e.Actor.Email, e.Action, e.Module, e.ResourceName)
					n++
				}
				return w.Flush()
			})
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "max entries to print, 0 for all")
	list.Flags().StringVar(&module, "module", "", "only entries of this module")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every audit entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				a.Audit.Clear(ctx, cliActor)
				fmt.Fprintln(cmd.OutOrStdout(), "audit log cleared")
				return nil
			})
		},
	})
	return cmd
}

func buildFetchCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [store...]",
		Short: "Reload stores from the active data source (all when none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				names := args
				if len(names) == 0 {
					names = a.Stores.Names()
				}

				failed := 0
				for _, name := range names {
					f, ok := a.Stores.ByName(name)
					if !ok {
						return fmt.Errorf("unknown store %q (known: %s)", name, strings.Join(a.Stores.Names(), ", "))
					}
					f.Fetch(ctx)
					if msg := f.LastError(); msg != "" {
						failed++
						fmt.Fprintf(cmd.OutOrStdout(), "%s: error: %s\n", name, msg)
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d items\n", name, f.Len())
				}
				if failed > 0 {
					return fmt.Errorf("%d store(s) failed to fetch", failed)
				}
				return nil
			})
		},
	}
}

func buildStoresCommand(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List stores and their item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				return printStores(cmd.OutOrStdout(), a)
			})
		},
	}
}

func printStores(out io.Writer, a *app.App) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tITEMS\tERROR")
	for _, name := range a.Stores.Names() {
		f, _ := a.Stores.ByName(name)
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, f.Len(), f.LastError())
	}
	return w.Flush()
}

func buildOperatorCommand(open Opener) *cobra.Command {
	cmd := &cobra.Command{Use: "operator", Short: "Manage back-office operators"}

	var name, password, role string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Register an operator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				u, err := a.Accounts.Register(ctx, args[0], name, password, models.UserRole(role))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Username, u.Role)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name")
	add.Flags().StringVar(&password, "password", "", "password, at least 6 characters")
	add.Flags().StringVar(&role, "role", string(models.RoleViewer), "admin, editor, recruiter or viewer")
	_ = add.MarkFlagRequired("password")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				users, err := a.Accounts.List(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "USERNAME\tNAME\tROLE")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s\t%s\n", u.Username, u.Name, u.Role)
				}
				return w.Flush()
			})
		},
	})
	return cmd
}

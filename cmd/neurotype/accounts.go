package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/neurotype/internal/account"
)

var (
	passwordFlag string
	deleteYes    bool
)

func newSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runSignupCmd),
	}
	cmd.Flags().StringVar(&passwordFlag, "password", "", "password (prompted when omitted)")
	return cmd
}

func runSignupCmd(cmd *cobra.Command, args []string, a *app) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	if err := a.manager.CreateAccount(cmd.Context(), args[0], password); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Account created. Logged in as %s.\n", args[0])
	return err
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runLoginCmd),
	}
	cmd.Flags().StringVar(&passwordFlag, "password", "", "password (prompted when omitted)")
	return cmd
}

func runLoginCmd(cmd *cobra.Command, args []string, a *app) error {
	password, err := readPassword(cmd)
	if err != nil {
		return err
	}
	if err := a.manager.Login(cmd.Context(), args[0], password); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", args[0])
	return err
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			return a.manager.Logout(cmd.Context())
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			acc, ok := a.manager.CurrentUser()
			if !ok {
				return describeError(account.ErrNotLoggedIn)
			}
			placement := "pending"
			if a.manager.HasCompletedPlacement() {
				placement = fmt.Sprintf("done (baseline %.0f WPM)", acc.BaselineWPM)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\nmember since %s\nplacement %s\n",
				acc.Username, acc.CreatedAt.Local().Format("2006-01-02"), placement)
			return err
		}),
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List stored accounts",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			names, err := a.manager.Usernames(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				logErrln("No accounts found. Create one with: neurotype signup <username>")
				return nil
			}
			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		}),
	}
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the logged-in account",
		Args:  cobra.NoArgs,
		RunE:  withApp(runDeleteCmd),
	}
	cmd.Flags().BoolVar(&deleteYes, "yes", false, "confirm deletion")
	return cmd
}

func runDeleteCmd(cmd *cobra.Command, _ []string, a *app) error {
	acc, ok := a.manager.CurrentUser()
	if !ok {
		return describeError(account.ErrNotLoggedIn)
	}
	if !deleteYes {
		return fmt.Errorf("refusing to delete %s without --yes", acc.Username)
	}
	if err := a.manager.DeleteAccount(cmd.Context()); err != nil {
		return describeError(err)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s.\n", acc.Username)
	return err
}

func readPassword(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		return passwordFlag, nil
	}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		logErrf("Password: ")
		raw, err := term.ReadPassword(fd)
		logErrln()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNotLoggedIn = errors.New("not logged in; run \"musheet-admin login\" first")

type credentials struct {
	username      string
	displayName   string
	passwordStdin bool
}

func (c *credentials) bind(cmd *cobra.Command, withName bool) {
	cmd.Flags().StringVarP(&c.username, "username", "u", "", "account username")
	cmd.Flags().BoolVar(&c.passwordStdin, "password-stdin", false, "read the password from stdin")
	if withName {
		cmd.Flags().StringVar(&c.displayName, "display-name", "", "display name of the new account")
	}
	_ = cmd.MarkFlagRequired("username")
}

// readPassword reads a line from stdin, without echo when stdin is a
// terminal and --password-stdin was not given.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("empty password")
	}
	return pw, nil
}

func newLoginCmd(gf *globalFlags) *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as an administrator and keep the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, gf, sinkStderr)
			if err != nil {
				return err
			}
			defer e.close()

			pw, err := readPassword(cmd, c.passwordStdin)
			if err != nil {
				return err
			}
			if err := e.store.Login(e.api.Login(cmd.Context(), c.username, pw)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", e.store.Current().DisplayName)
			return err
		},
	}
	c.bind(cmd, false)
	return cmd
}

func newSignupCmd(gf *globalFlags) *cobra.Command {
	var c credentials
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account; the first account becomes the administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, gf, sinkStderr)
			if err != nil {
				return err
			}
			defer e.close()

			pw, err := readPassword(cmd, c.passwordStdin)
			if err != nil {
				return err
			}
			if err := e.store.Signup(e.api.Register(cmd.Context(), c.username, pw, c.displayName)); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Admin account created successfully")
			return err
		},
	}
	c.bind(cmd, true)
	return cmd
}

func newLogoutCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, gf, sinkStderr)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.store.Logout(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func newWhoamiCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, gf, sinkStderr)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.requireSession(); err != nil {
				return err
			}
			cur := e.store.Current()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d) on %s\n", cur.DisplayName, cur.UserID, e.client.BaseURL())
			return err
		},
	}
}

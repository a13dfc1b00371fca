package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxor-app/luxor-auth/internal/application"
	"github.com/luxor-app/luxor-auth/internal/i18n"
	"github.com/luxor-app/luxor-auth/pkg/validation"
)

type loginOptions struct {
	email         string
	password      string
	passwordStdin bool
}

func newLoginCmd(root *rootOptions) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.password, "password", "", "account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&opts.passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

func runLogin(cmd *cobra.Command, root *rootOptions, opts *loginOptions) error {
	password := opts.password
	if opts.passwordStdin {
		p, err := readPassword(root.stdin)
		if err != nil {
			return err
		}
		password = p
	}

	lang := root.language()
	if err := checkForm(lang, opts.email, password); err != nil {
		return err
	}

	c, err := root.open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	lang = c.Language

	c.Session.Subscribe(func(sn application.Snapshot) {
		if sn.State == application.StateAuthenticating {
			cmd.PrintErrln(i18n.T(lang, i18n.Authenticating))
		}
	})
	user, err := c.Session.SignIn(cmd.Context(), opts.email, password)
	switch {
	case errors.Is(err, application.ErrAlreadySignedIn):
		snap := c.Session.Snapshot()
		return fmt.Errorf("already signed in as %s; run `luxor logout` first", snap.CurrentUser.Email)
	case errors.Is(err, application.ErrLoginInProgress):
		return err
	case err != nil:
		return errors.New(i18n.ErrorMessage(lang, err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s, %s\n", i18n.T(lang, i18n.SignInSucceeded), displayName(user.FullName(), user.Email))
	return nil
}

// checkForm applies the login form rules before any network call.
func checkForm(lang i18n.Language, email, password string) error {
	if email == "" || password == "" {
		return errors.New(i18n.T(lang, i18n.FillAllFields))
	}
	details := validation.ToDetails(validation.LoginForm{Email: email, Password: password}.Validate())
	if details == nil {
		return nil
	}
	var msgs []string
	if _, ok := details["email"]; ok {
		msgs = append(msgs, i18n.T(lang, i18n.InvalidEmailFormat))
	}
	if _, ok := details["password"]; ok {
		msgs = append(msgs, i18n.T(lang, i18n.PasswordRequirements))
	}
	if len(msgs) == 0 {
		msgs = append(msgs, i18n.T(lang, i18n.FillAllFields))
	}
	return errors.New(strings.Join(msgs, "\n"))
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func displayName(name, email string) string {
	if name == "" {
		return email
	}
	return name
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxor-app/luxor-auth/internal/i18n"
	"github.com/luxor-app/luxor-auth/pkg/validation"
)

type validateOptions struct {
	email    string
	password string
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check credentials against the login form rules without signing in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, root.language(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "email to check")
	cmd.Flags().StringVar(&opts.password, "password", "", "password to check")

	return cmd
}

func runValidate(cmd *cobra.Command, lang i18n.Language, opts *validateOptions) error {
	pc := validation.ValidatePassword(opts.password)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "email valid:           %s\n", mark(validation.ValidateEmail(opts.email)))
	if validation.EmailFieldError(opts.email) {
		fmt.Fprintf(out, "  %s\n", i18n.T(lang, i18n.InvalidEmailFormat))
	}
	fmt.Fprintf(out, "password length >= %d: %s\n", validation.MinPasswordLength, mark(pc.HasMinLength))
	fmt.Fprintf(out, "password uppercase:    %s\n", mark(pc.HasCapital))
	fmt.Fprintf(out, "password special char: %s\n", mark(pc.HasSpecialChar))

	if !validation.IsFormValid(opts.email, opts.password) {
		return errors.New(i18n.T(lang, i18n.FillAllFields))
	}
	return nil
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

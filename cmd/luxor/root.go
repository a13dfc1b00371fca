package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/luxor-app/luxor-auth/config"
	"github.com/luxor-app/luxor-auth/internal/container"
	"github.com/luxor-app/luxor-auth/internal/i18n"
	"github.com/luxor-app/luxor-auth/pkg/helpers"
)

// buildFunc constructs the container for a command invocation.
type buildFunc func(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*container.Container, error)

func defaultBuild(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*container.Container, error) {
	return container.New(ctx, cfg, logger)
}

// rootOptions holds the global flags and injected dependencies.
type rootOptions struct {
	configFile string
	lang       string
	verbose    bool

	build buildFunc
	stdin io.Reader
}

// NewRootCmd creates the root command for the luxor CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultBuild, os.Stdin)
}

func newRootCmd(build buildFunc, stdin io.Reader) *cobra.Command {
	o := &rootOptions{build: build, stdin: stdin}

	cmd := &cobra.Command{
		Use:   "luxor",
		Short: "Sign in to Luxor and manage the local session",
		Long: `luxor signs in against the Luxor user service and keeps the
resulting session (user profile and token pair) on this machine.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&o.configFile, "config", "", "path to a .env file")
	cmd.PersistentFlags().StringVar(&o.lang, "lang", "", "message language (en, ar, fr, zh); defaults to the locale")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log diagnostics to stderr")

	cmd.AddCommand(newLoginCmd(o))
	cmd.AddCommand(newLogoutCmd(o))
	cmd.AddCommand(newStatusCmd(o))
	cmd.AddCommand(newValidateCmd(o))

	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configFile != "" {
		if err := godotenv.Load(o.configFile); err != nil {
			return nil, fmt.Errorf("load config %s: %w", o.configFile, err)
		}
	} else {
		_ = godotenv.Load() // load .env if present
	}
	cfg := config.Load()
	if o.lang != "" {
		cfg.Language = o.lang
	}
	return cfg, nil
}

// open loads configuration and builds the container. The caller closes it.
func (o *rootOptions) open(cmd *cobra.Command) (*container.Container, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := helpers.NewLoggerTo(cmd.ErrOrStderr(), cfg.AppName, cfg.Env)
	if !o.verbose {
		logger.SetLevel(logrus.WarnLevel)
	}
	return o.build(cmd.Context(), cfg, logger)
}

// language resolves the message language without building a container.
func (o *rootOptions) language() i18n.Language {
	if o.lang != "" {
		return i18n.Resolve(o.lang)
	}
	if v := os.Getenv("LUXOR_LANG"); v != "" {
		return i18n.Resolve(v)
	}
	return i18n.FromEnv()
}

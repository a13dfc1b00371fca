package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxor-app/luxor-auth/internal/application"
	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

// statusView is what status prints. Tokens are reported as present or
// absent, never echoed.
type statusView struct {
	State           string       `json:"state"`
	Authenticated   bool         `json:"authenticated"`
	User            *entity.User `json:"user,omitempty"`
	HasAccessToken  bool         `json:"has_access_token"`
	HasRefreshToken bool         `json:"has_refresh_token"`
}

type statusConfig struct {
	jsonOutput bool
}

func newStatusCmd(root *rootOptions) *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			return runStatus(cmd, cfg, c.Session.Snapshot())
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")

	return cmd
}

func newStatusView(s application.Snapshot) statusView {
	return statusView{
		State:           s.State.String(),
		Authenticated:   s.IsAuthenticated,
		User:            s.CurrentUser,
		HasAccessToken:  s.AccessToken != "",
		HasRefreshToken: s.RefreshToken != "",
	}
}

func runStatus(cmd *cobra.Command, cfg *statusConfig, snap application.Snapshot) error {
	view := newStatusView(snap)
	if cfg.jsonOutput {
		b, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatStatusText(view))
	return nil
}

func formatStatusText(v statusView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "state:   %s\n", v.State)
	if v.User == nil {
		return b.String()
	}
	fmt.Fprintf(&b, "user:    %s <%s>\n", displayName(v.User.FullName(), v.User.Email), v.User.Email)
	fmt.Fprintf(&b, "id:      %s\n", v.User.ID)
	fmt.Fprintf(&b, "active:  %t\n", v.User.IsActive)
	fmt.Fprintf(&b, "verified: %t\n", v.User.IsVerified)
	for _, p := range v.User.Photos {
		fmt.Fprintf(&b, "photo:   %s %s\n", p.Type.DisplayName(), p.URL)
	}
	return b.String()
}

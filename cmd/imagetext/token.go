package main

import (
	"fmt"
	"time"

	"github.com/Abraxas-365/imagetext/auth"
	"github.com/Abraxas-365/imagetext/extractx"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		scope   string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the dev server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := extractx.NewConfig(".env")
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokenService(cfg.Get("auth.jwt.secret").AsString(), ttl)
			if err != nil {
				return err
			}
			token, err := tokens.GenerateToken(subject, scope)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "dev", "token subject")
	cmd.Flags().StringVar(&scope, "scope", "extract", "token scope")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

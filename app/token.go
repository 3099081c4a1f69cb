package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", daemon.DefaultAdmin, "Username the token is issued for")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime, the configured token ttl if 0")
	tokenCmd.Flags().BoolVar(&tokenRevoke, "revoke", false, "Revoke all tokens of the user instead of issuing one")

	rootCmd.AddCommand(tokenCmd)
}

var (
	tokenUser   string
	tokenTTL    time.Duration
	tokenRevoke bool

	tokenCmd = &cobra.Command{
		Use:     "token",
		Short:   "Issue or revoke API tokens of a user",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			gdb, err := daemon.OpenStore(ctx, &cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if sqlDB, dbErr := gdb.DB(); dbErr == nil {
				defer sqlDB.Close() //nolint:errcheck
			}

			authService := auth.NewService(gdb)

			if tokenRevoke {
				n, revokeErr := authService.RevokeTokens(ctx, tokenUser)
				if revokeErr != nil {
					return revokeErr //nolint:wrapcheck
				}

				cmd.Printf("revoked %d token(s) of %s\n", n, tokenUser)

				return nil
			}

			ttl := tokenTTL
			if ttl == 0 {
				ttl = cfg.Token.TTL
			}

			token, err := authService.IssueToken(ctx, tokenUser, ttl)
			if err != nil {
				return err //nolint:wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)

			return err //nolint:wrapcheck
		},
	}
)

package main

import (
	"errors"
	"fmt"

	"store-admin-service/pkg/jwtutil"

	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		Long: `Mint a bearer token signed with JWT_SIGNING_KEY.

Example:
  store-admin token --user user_123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return errors.New("--user is required")
			}
			appConfig, _, err := setup(cmd)
			if err != nil {
				return err
			}

			token, err := jwtutil.New(appConfig.JWT.SigningKey, appConfig.JWT.ExpirationHours).GenerateToken(userID)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the sub claim")
	return cmd
}

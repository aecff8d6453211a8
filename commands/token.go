package commands

import (
	"fmt"
	"time"

	"go-restaurant-pos/helpers"

	"github.com/spf13/cobra"
)

var tokenFlags struct {
	name string
	role string
	ttl  time.Duration
}

// restaurant token: mint a staff token for the protected order routes.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a staff token for the kitchen and cashier screens",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenFlags.name == "" {
			return fmt.Errorf("token: --name is required")
		}
		signed, err := helpers.GenerateStaffToken(tokenFlags.name, tokenFlags.role, tokenFlags.ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.name, "name", "", "staff member the token is issued to")
	tokenCmd.Flags().StringVar(&tokenFlags.role, "role", helpers.RoleKitchen, "one of admin, kitchen, waiter, cashier")
	tokenCmd.Flags().DurationVar(&tokenFlags.ttl, "ttl", 12*time.Hour, "token lifetime")
}

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietanh2810/occurrence-registration-api/internal/config"
	"github.com/vietanh2810/occurrence-registration-api/internal/pkg/jwthelper"
)

var (
	tokenMemberID  uint
	tokenUserAgent string
)

// tokenCmd mints a bearer token for local testing. Members are
// authenticated upstream in production.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for a member",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenMemberID == 0 {
			return fmt.Errorf("--member is required")
		}

		conf, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to initialize config -> %w", err)
		}

		token, err := jwthelper.GenerateToken([]byte(conf.API.JWTSigningKey), tokenMemberID, tokenUserAgent)
		if err != nil {
			return fmt.Errorf("jwthelper.GenerateToken -> %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)

		return nil
	},
}

func init() {
	tokenCmd.Flags().UintVar(&tokenMemberID, "member", 0, "participant id of the member")
	tokenCmd.Flags().StringVar(&tokenUserAgent, "user-agent", "curl/8.5.0", "user agent the token is bound to")
	rootCmd.AddCommand(tokenCmd)
}

package cli

import (
	"fmt"
	"time"

	"exam-scoring-service/internal/auth"
	"exam-scoring-service/internal/config"
	"exam-scoring-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewTokenCmd issues a signed bearer token for local testing.
func NewTokenCmd(configPath *string) *cobra.Command {
	var who domain.Identity
	var role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			tokens, err := tokenService(cfg)
			if err != nil {
				return err
			}
			who.Role = domain.Role(role)
			tok, err := tokens.Issue(who)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&who.UserID, "user", "", "user id (required)")
	cmd.Flags().StringVar(&who.Name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleStudent), "role: student, teacher or admin")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func tokenService(cfg config.Config) (*auth.TokenService, error) {
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth secret not configured")
	}
	return auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, config.TTLDuration(cfg.Auth.TTL, 8*time.Hour)), nil
}

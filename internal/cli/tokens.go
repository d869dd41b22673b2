package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"go-touring-backend/pkg/sanity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func newSignWebhookCmd() *cobra.Command {
	var (
		secret string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "sign-webhook",
		Short: "Print a sanity-webhook-signature header for a request body",
		Long:  "Reads the body from --file, or stdin when --file is -, and prints the header value the CMS would send.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return fmt.Errorf("--secret or SANITY_WEBHOOK_SECRET is required")
			}
			var (
				body []byte
				err  error
			)
			if file == "-" {
				body, err = io.ReadAll(cmd.InOrStdin())
			} else {
				body, err = os.ReadFile(file)
			}
			if err != nil {
				return err
			}

			header := sanity.NewVerifier(secret, 0).Sign(body, time.Now())
			fmt.Fprintln(cmd.OutOrStdout(), header)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", envOr("SANITY_WEBHOOK_SECRET", ""), "webhook secret")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "request body file")
	return cmd
}

func newAdminTokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Mint an HS256 bearer token for the admin routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return fmt.Errorf("--secret or ADMIN_JWT_SECRET is required")
			}
			now := time.Now()
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub":  subject,
				"role": "admin",
				"iat":  now.Unix(),
				"exp":  now.Add(ttl).Unix(),
			})
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", envOr("ADMIN_JWT_SECRET", ""), "admin token secret")
	cmd.Flags().StringVar(&subject, "sub", "operator", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

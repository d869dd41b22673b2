package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go-touring-backend/pkg/client"
	"go-touring-backend/pkg/validation"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		baseURL string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a contact form payload through the public API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var payload map[string]interface{}
			if err := json.NewDecoder(r).Decode(&payload); err != nil {
				return fmt.Errorf("payload must be a JSON object: %w", err)
			}

			err := client.NewContactClient(baseURL, nil).Submit(cmd.Context(), payload)
			var fieldErrs validation.FieldErrors
			if errors.As(err, &fieldErrs) {
				for _, field := range fieldErrs.Fields() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, fieldErrs[field])
				}
				return err
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Mensaje recibido.")
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080", "API base URL")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "payload file")
	return cmd
}

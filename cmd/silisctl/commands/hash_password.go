package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/silis/backend/pkg/auth"
)

func hashPasswordCmd() *cobra.Command {
	var envLine bool

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the ADMIN_PASSWORD_HASH value for a password",
		Long: `Print the SHA-256 hex digest used as ADMIN_PASSWORD_HASH.
Without an argument the password is read from the first line of stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if utf8.RuneCountInString(password) < auth.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
			}

			hash := auth.HashPassword(password)
			if envLine {
				fmt.Fprintf(cmd.OutOrStdout(), "ADMIN_PASSWORD_HASH=%s\n", hash)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().BoolVar(&envLine, "env", false, "print as a .env assignment")
	return cmd
}

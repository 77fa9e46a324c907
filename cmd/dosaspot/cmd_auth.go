package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thedosaspot/dosaspot/pkg/auth"
)

// dosaspot password:hash [password]
var passwordHashCmd = &cobra.Command{
	Use:   "password:hash [password]",
	Short: "Print a bcrypt hash to use as ADMIN_PASSWORD",
	Long:  "Hashes the argument, or the first line of stdin when no argument is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var plain string
		if len(args) == 1 {
			plain = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no password given")
			}
			plain = strings.TrimRight(line, "\r\n")
		}
		if plain == "" {
			return errors.New("password must not be empty")
		}

		hash, err := auth.HashPassword(plain)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

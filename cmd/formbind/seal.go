package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoSealKey = errors.New("--seal-key (or FORMBIND_SEAL_KEY) is required")

func (a *app) sealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seal <value>",
		Short: "Seal a value the way sealed hidden fields do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealer, err := a.sealer()
			if err != nil {
				return err
			}
			if sealer == nil {
				return errNoSealKey
			}
			token, err := sealer.Seal(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}

func (a *app) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <token>",
		Short: "Verify and print a sealed value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sealer, err := a.sealer()
			if err != nil {
				return err
			}
			if sealer == nil {
				return errNoSealKey
			}
			var value any
			if err := sealer.Open(args[0], &value); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

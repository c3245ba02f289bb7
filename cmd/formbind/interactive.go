package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/internal/preview"
	"github.com/goliatone/go-formbind/internal/prompt"
)

// newDriver is swapped in tests.
var newDriver = func() prompt.Driver { return prompt.NewSurveyDriver() }

func (a *app) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Describe a component through prompts and render it",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var defaults preview.Request
			if err := a.v.Unmarshal(&defaults); err != nil {
				return fmt.Errorf("decode defaults: %w", err)
			}

			req, err := prompt.Ask(cmd.Context(), newDriver(), defaults)
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			r, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			markup, err := r.Render(req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), markup)
			return err
		},
	}
}

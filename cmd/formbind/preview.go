package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbind/internal/preview"
)

func (a *app) previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "preview",
		Aliases: []string{"p"},
		Short:   "Render one component to stdout",
		Long: `Render one component to stdout.

Examples:
  formbind preview --kind textbox --name Greeting --value hello --culture en-GB
  formbind preview --kind dropdown --name Colour --items r=Red,b=Blue --value b --null-option Choose
  formbind preview --kind textbox --name Age --value 42 --attempted forty --errors "Must be a number"
  formbind preview --rules ./rules.yaml --watch`,
		Args: cobra.NoArgs,
		RunE: a.runPreview,
	}

	flags := cmd.Flags()
	flags.StringP("kind", "k", "textbox", "component kind ("+strings.Join(preview.Kinds(), ", ")+")")
	flags.StringP("name", "n", "", "property path")
	flags.String("value", "", "bound value; comma separated for list kinds")
	flags.String("culture", "", "BCP 47 culture, e.g. en-GB")
	flags.Bool("label", false, "render the resolved label")
	flags.String("placeholder", "", "placeholder term for text inputs")
	flags.String("null-option", "", "null option text for drop-downs")
	flags.StringSlice("items", nil, "items as value=text pairs")
	flags.StringArray("errors", nil, "validation errors for the field (repeatable)")
	flags.String("attempted", "", "previously submitted raw value")
	flags.String("marker", "", "validation marker mode (on-error, always, never)")
	flags.Bool("sealed", false, "seal hidden field values (requires --seal-key)")
	flags.Bool("watch", false, "re-render when the config, rules or catalog files change")
	flags.Duration("debounce", preview.DefaultDebounce, "delay used to group file change events")
	for _, name := range []string{"kind", "name", "value", "culture", "label", "placeholder", "null-option", "items", "errors", "attempted", "marker", "sealed"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}
	return cmd
}

func (a *app) runPreview(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if err := a.renderOnce(cmd, out); err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}

	files := a.watchedFiles()
	if len(files) == 0 {
		return errors.New("--watch needs a config, rules or catalog file")
	}
	debounce, _ := cmd.Flags().GetDuration("debounce")
	logger, err := a.logger(cmd)
	if err != nil {
		return err
	}
	logger.Info("watching for changes", slog.Any("files", files))

	return preview.Watch(cmd.Context(), files, debounce, logger, func() {
		if used := a.v.ConfigFileUsed(); used != "" {
			if err := a.v.ReadInConfig(); err != nil {
				logger.Warn("reload config failed", slog.Any("error", err))
				return
			}
		}
		if err := a.renderOnce(cmd, out); err != nil {
			logger.Warn("render failed", slog.Any("error", err))
		}
	})
}

func (a *app) renderOnce(cmd *cobra.Command, out io.Writer) error {
	var req preview.Request
	if err := a.v.Unmarshal(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	markup, err := r.Render(req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, markup)
	return err
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formbind/internal/preview"
	"github.com/goliatone/go-formbind/pkg/forms"
	"github.com/goliatone/go-formbind/pkg/i18n"
	"github.com/goliatone/go-formbind/pkg/seal"
)

// app carries the configuration shared by every subcommand. Flags are bound
// into v, so values may also come from .formbind.yml or FORMBIND_* env vars.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "formbind",
		Short: "Render bound form components from the command line",
		Long: `formbind renders a single form component the way a view would, so
attribute rules, translations and validation decoration can be checked
without a running application.

Configuration is read, in order of precedence, from flags, FORMBIND_*
environment variables and a .formbind.yml file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default .formbind.yml, or FORMBIND_CONFIG_FILE)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringSlice("rules", nil, "attribute rule files or directories (YAML or JSON)")
	flags.String("catalog", "", "translation catalog file or directory")
	flags.String("seal-key", "", "key used to seal hidden field values")
	flags.Bool("encrypt", false, "encrypt sealed values instead of signing them")
	for _, name := range []string{"log-level", "rules", "catalog", "seal-key", "encrypt"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(a.previewCmd(), a.interactiveCmd(), a.sealCmd(), a.openCmd())
	return root
}

func (a *app) initConfig() error {
	switch {
	case a.cfgFile != "":
		a.v.SetConfigFile(a.cfgFile)
	case os.Getenv("FORMBIND_CONFIG_FILE") != "":
		a.v.SetConfigFile(os.Getenv("FORMBIND_CONFIG_FILE"))
	default:
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".formbind")
	}

	a.v.SetEnvPrefix("FORMBIND")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (a.cfgFile == "" && errors.Is(err, fs.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func (a *app) logger(cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

// renderer assembles the preview renderer from the loaded configuration.
func (a *app) renderer(cmd *cobra.Command) (preview.Renderer, error) {
	logger, err := a.logger(cmd)
	if err != nil {
		return preview.Renderer{}, err
	}
	r := preview.Renderer{Logger: logger}

	var chain forms.Configurations
	for _, path := range a.v.GetStringSlice("rules") {
		rules, err := loadRules(path)
		if err != nil {
			return preview.Renderer{}, err
		}
		chain = append(chain, rules)
	}
	if len(chain) > 0 {
		r.Config = chain
	}

	if path := a.v.GetString("catalog"); path != "" {
		catalog, err := loadCatalog(path)
		if err != nil {
			return preview.Renderer{}, err
		}
		r.Terms = i18n.NewTermResolver(catalog)
	}

	r.Sealer, err = a.sealer()
	if err != nil {
		return preview.Renderer{}, err
	}
	return r, nil
}

func (a *app) sealer() (*seal.Sealer, error) {
	key := a.v.GetString("seal-key")
	if key == "" {
		return nil, nil
	}
	var opts []seal.Option
	if a.v.GetBool("encrypt") {
		opts = append(opts, seal.WithEncryption())
	}
	return seal.New([]byte(key), opts...)
}

// watchedFiles lists the files whose changes should trigger a re-render.
func (a *app) watchedFiles() []string {
	var files []string
	if used := a.v.ConfigFileUsed(); used != "" {
		files = append(files, used)
	}
	for _, path := range append(a.v.GetStringSlice("rules"), a.v.GetString("catalog")) {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files = append(files, path)
		}
	}
	return files
}

func loadRules(path string) (*forms.AttributeRules, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	if info.IsDir() {
		return forms.LoadAttributeRulesFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return forms.LoadAttributeRules(data)
}

func loadCatalog(path string) (*i18n.Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if info.IsDir() {
		return i18n.LoadCatalogFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return i18n.LoadCatalog(data)
}

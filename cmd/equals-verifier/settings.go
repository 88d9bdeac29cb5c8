package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"equals-verifier/internal/common"
	"equals-verifier/internal/config"
	"equals-verifier/options"
)

// effectiveSettings is the resolved form of config.Settings.
type effectiveSettings struct {
	Suppress []string            `yaml:"suppress"`
	LogLevel string              `yaml:"log_level"`
	Nonnull  map[string][]string `yaml:"nonnull,omitempty"`
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings [file]",
		Short: "Print the settings read from a file and the environment",
		Long: fmt.Sprintf(`Print the settings the verifier applies through WithSettingsFile.
Environment variables prefixed with %s override the file.`, config.EnvPrefix),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := common.First(args)

			s, err := config.LoadSettings(path)
			if err != nil {
				return err
			}

			out, err := resolveSettings(s)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(out)
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func resolveSettings(s *config.Settings) (*effectiveSettings, error) {
	warnings, err := s.Warnings()
	if err != nil {
		return nil, err
	}

	level, err := s.Level()
	if err != nil {
		return nil, err
	}

	out := &effectiveSettings{
		Suppress: []string{},
		LogLevel: level.String(),
		Nonnull:  s.Nonnull,
	}
	for _, w := range options.AllWarnings() {
		if warnings.Has(w) {
			out.Suppress = append(out.Suppress, w.String())
		}
	}

	return out, nil
}

func newWarningsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "List the warnings that can be suppressed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, w := range options.AllWarnings() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", w, w.Description()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli implements the topictree commands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"topictree/internal/ai"
	"topictree/internal/config"
)

// newClient builds the language-model client for one-shot commands.
// Tests replace it with a scripted client.
var newClient = func(cfg *config.Config, provider string) (ai.Client, error) {
	reg := ai.NewRegistry(cfg.AIProvider, cfg.ProviderConfigs())
	if len(reg.Available()) == 0 {
		return nil, errors.New("no AI provider configured (set OPENAI_API_KEY, GEMINI_API_KEY, CLAUDE_API_KEY or MISTRAL_API_KEY)")
	}
	if provider != "" {
		if err := reg.SetActive(provider); err != nil {
			return nil, err
		}
	}
	slog.Debug("ai provider selected", "active", reg.ActiveName(), "available", reg.Available())
	return reg, nil
}

// app carries state shared by the subcommands of one invocation.
type app struct {
	envFiles []string
	cfg      *config.Config
}

// NewRootCmd builds the command tree. Configuration is loaded once before
// any subcommand runs.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "topictree",
		Short: "Generate curriculum topic trees with language models",
		Long: "Builds hierarchical topic trees (Themenbäume) for a subject with a language model.\n" +
			"Run the HTTP API with 'serve' or a single build with 'generate'.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.envFiles...)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			slog.SetDefault(cfg.NewLogger())
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "Environment file(s) to load (default: .env)")

	root.AddCommand(
		newServeCmd(a),
		newGenerateCmd(a),
		newInspectCmd(a),
		newTaxonomyCmd(),
		newEventsCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

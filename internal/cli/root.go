// Package cli wires the assistant into an interactive terminal chat.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hualei/FinGenie/config"
)

var version = "0.2.0"

// NewRootCmd builds the fingenie command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fingenie",
		Short: "FinGenie - conversational personal finance assistant",
		Long: `FinGenie answers free-form money questions: debt payoff plans,
financial health metrics, stock quotes and forecasts, news sentiment, and a
running budget ledger. Queries are routed to deterministic calculators; a
language model only phrases the answer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newChatCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			session, err := NewChatSession(cmd.Context(), cfg, plain)
			if err != nil {
				return err
			}
			defer session.Close()

			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "skip the language model and print structured answers only")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the FinGenie version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fingenie %s\n", version)
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/autotype/internal/config"
	"github.com/verte-zerg/autotype/internal/stats"
	"github.com/verte-zerg/autotype/internal/store"
	"github.com/verte-zerg/autotype/internal/textsrc"
)

var (
	snippetText string
	snippetFile string
)

func newSnippetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snippet",
		Short: "Manage saved texts",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save or replace a snippet",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnippetAddCmd,
	}
	addCmd.Flags().StringVar(&snippetText, "text", "", "snippet text")
	addCmd.Flags().StringVar(&snippetFile, "file", "", "file with snippet text ('-' reads stdin)")
	addCmd.MarkFlagsMutuallyExclusive("text", "file")
	addCmd.MarkFlagsOneRequired("text", "file")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List snippets",
		Args:  cobra.NoArgs,
		RunE:  runSnippetListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Print a snippet",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnippetShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a snippet",
		Args:    cobra.ExactArgs(1),
		RunE:    runSnippetRmCmd,
	})
	return cmd
}

func withStore(ctx context.Context, fn func(context.Context, *store.Store) error) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(ctx, st)
}

func runSnippetAddCmd(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := store.ValidateName(name); err != nil {
		return err
	}
	text := textsrc.Sanitize(snippetText)
	if snippetFile != "" {
		loaded, err := textsrc.Load(snippetFile, os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to load text: %w", err)
		}
		text = loaded
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("snippet text must not be empty")
	}
	return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
		if err := st.PutSnippet(ctx, name, text); err != nil {
			return fmt.Errorf("failed to save snippet: %w", err)
		}
		logErrf("Saved snippet %q (%d chars)\n", name, len([]rune(text)))
		return nil
	})
}

func runSnippetListCmd(cmd *cobra.Command, _ []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
		snippets, err := st.ListSnippets(ctx)
		if err != nil {
			return fmt.Errorf("failed to list snippets: %w", err)
		}
		if err := stats.RenderSnippets(cmd.OutOrStdout(), snippets); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runSnippetShowCmd(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
		snip, err := st.GetSnippet(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load snippet: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), snip.Text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runSnippetRmCmd(cmd *cobra.Command, args []string) error {
	return withStore(cmd.Context(), func(ctx context.Context, st *store.Store) error {
		err := st.DeleteSnippet(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("snippet %q does not exist", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete snippet: %w", err)
		}
		logErrf("Deleted snippet %q\n", args[0])
		return nil
	})
}

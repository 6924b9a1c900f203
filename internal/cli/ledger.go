package cli

// #region imports
import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adacomputing/ada-engine/internal/ledger"
)

// #endregion

// #region history

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List recent ledger entries, or show one entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				e, err := store.Get(cmd.Context(), args[0])
				if errors.Is(err, ledger.ErrNotFound) {
					return fmt.Errorf("no entry with id %s", args[0])
				}
				if err != nil {
					return err
				}
				return a.emit(cmd.OutOrStdout(), e, renderEntries([]ledger.Entry{e}))
			}
			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []ledger.Entry{}
			}
			return a.emit(cmd.OutOrStdout(), entries, renderEntries(entries))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

// #endregion

// #region lexicon

func newLexiconCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "lexicon [entity]",
		Short: "List cached lexical entries, or show one entity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				e, err := store.Lexicon(cmd.Context(), args[0])
				if errors.Is(err, ledger.ErrNotFound) {
					return fmt.Errorf("no lexicon entry for %s", args[0])
				}
				if err != nil {
					return err
				}
				return a.emit(cmd.OutOrStdout(), e, renderLexicon([]ledger.LexiconEntry{e}))
			}
			entries, err := store.ListLexicon(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if entries == nil {
				entries = []ledger.LexiconEntry{}
			}
			return a.emit(cmd.OutOrStdout(), entries, renderLexicon(entries))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "number of entries")
	return cmd
}

// #endregion

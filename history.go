package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/epgtools/epgverify/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored validation results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored validation results, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored validation results",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No validation history.")
		return nil
	}
	for _, e := range entries {
		verdict := "VALID"
		if !e.IsValid {
			verdict = fmt.Sprintf("INVALID (%d errors)", e.ErrorCount)
		}
		fmt.Printf("%s  %s  %s  %s  PHTs %v\n",
			e.ID, e.Timestamp.Format(time.RFC3339), e.FileName, verdict, e.Result.PresentPHTs)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Validation history cleared.")
	return nil
}

// findEntry resolves an export target: an entry id, or "latest" for the
// most recent entry.
func findEntry(store history.Store, ref string) (*history.Entry, error) {
	entries, err := store.List()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("validation history is empty")
	}
	if ref == "latest" {
		return entries[0], nil
	}
	for _, e := range entries {
		if e.ID == ref {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no history entry with id %s", ref)
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/epgtools/epgverify/pkg/rules"
)

var (
	flagExportFormat string
	flagExportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <entry-id|latest>",
	Short: "Re-export a stored validation result as JSON or CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the PHT rule catalog",
	Args:  cobra.NoArgs,
	Run:   runRules,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "json", "export format: json or csv")
	exportCmd.Flags().StringVar(&flagExportOut, "out", "-", "output file, or - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := findEntry(store, args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if flagExportOut != "-" {
		f, err := os.Create(flagExportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch flagExportFormat {
	case "json":
		return entry.Result.WriteJSON(out, entry.FileName, time.Now())
	case "csv":
		return entry.Result.WriteCSV(out)
	default:
		return fmt.Errorf("unknown export format %q (want json or csv)", flagExportFormat)
	}
}

func runRules(cmd *cobra.Command, args []string) {
	for _, p := range rules.Profiles() {
		fmt.Printf("PHT %d: %s\n", p.ID, p.Name)
		fmt.Printf("  %s\n", p.Description)
		fmt.Printf("  ads per zone: %d-%d\n", p.MinAds, p.MaxAds)
		fmt.Printf("  required tags: %v\n", p.RequiredTags)
		fmt.Printf("  allowed file types: %v\n", p.AllowedFileTypes)
	}
}

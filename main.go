package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/epgtools/epgverify/pkg/history"
	"github.com/epgtools/epgverify/pkg/report"
	"github.com/epgtools/epgverify/pkg/source"
	"github.com/epgtools/epgverify/pkg/validate"
)

const version = "0.1.0"

var (
	flagAssets    string
	flagJSONOut   string
	flagCSVOut    string
	flagHistoryDB string
	flagQuiet     bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:     "epgverify",
	Short:   "Validate EPG advertisement XML against PHT profile rules",
	Version: version,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file.xml>",
	Short: "Validate an EPG XML document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runValidate(args[0]))
	},
}

func main() {
	rootCmd.AddCommand(validateCmd, historyCmd, exportCmd, rulesCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHistoryDB, "history-db", os.Getenv("EPGVERIFY_HISTORY_DB"), "path to the validation history database")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	validateCmd.Flags().StringVar(&flagAssets, "assets", "", "YAML asset database replacing the built-in table")
	validateCmd.Flags().StringVar(&flagJSONOut, "json", "", "write JSON report to a file, or - for stdout")
	validateCmd.Flags().StringVar(&flagCSVOut, "csv", "", "write CSV report to a file")
	validateCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "suppress the text report")
}

// newLogger builds the CLI logger. Library packages never log; all
// operational output funnels through here.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// runValidate executes one validation and returns the process exit code:
// 0 valid, 1 validation errors, 2 fatal (unreadable input).
func runValidate(path string) int {
	logger := newLogger()

	src := source.NewFileSource(path)
	if flagAssets != "" {
		src.AssetsPath = flagAssets
	}

	payload, err := src.Fetch()
	if err != nil {
		logger.Error().Err(err).Msg("reading input")
		return 2
	}
	if payload.Assets != nil {
		logger.Debug().Int("assets", len(payload.Assets)).Msg("using replacement asset database")
	}

	result := validate.ValidateWithAssets(payload.XMLText, payload.Assets)

	if !flagQuiet {
		result.WriteText(os.Stdout)
	}
	if flagJSONOut != "" {
		if err := writeJSONReport(result, payload.FileName, flagJSONOut); err != nil {
			logger.Error().Err(err).Msg("writing JSON report")
			return 2
		}
	}
	if flagCSVOut != "" {
		if err := writeCSVReport(result, flagCSVOut); err != nil {
			logger.Error().Err(err).Msg("writing CSV report")
			return 2
		}
	}

	if flagHistoryDB != "" {
		if err := saveHistory(payload, result); err != nil {
			// Persistence problems never mask the validation verdict.
			logger.Warn().Err(err).Msg("saving validation history")
		} else {
			logger.Debug().Str("db", flagHistoryDB).Msg("validation history saved")
		}
	}

	if result.ErrorCount() > 0 {
		return 1
	}
	return 0
}

func saveHistory(payload *source.Payload, result *report.Result) error {
	store, err := history.Open(flagHistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Save(payload.FileName, payload.FilePath, result)
	return err
}

func writeJSONReport(result *report.Result, fileName, out string) error {
	if out == "-" {
		return result.WriteJSON(os.Stdout, fileName, time.Now())
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return result.WriteJSON(f, fileName, time.Now())
}

func writeCSVReport(result *report.Result, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return result.WriteCSV(f)
}

// openHistory is shared by the history and export commands, which cannot
// run without a configured database.
func openHistory() (*history.SQLiteStore, error) {
	if flagHistoryDB == "" {
		return nil, fmt.Errorf("no history database configured (use --history-db or EPGVERIFY_HISTORY_DB)")
	}
	return history.Open(flagHistoryDB)
}

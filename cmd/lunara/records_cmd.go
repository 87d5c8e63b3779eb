package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terraincognita07/lunara/internal/cli"
	"github.com/terraincognita07/lunara/internal/store"
)

var (
	exportFormat string
	exportOutput string
	clearConfirm bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup or report of all records",
	Long: `Writes the records in one of the supported formats:
  - json: full backup, accepted by "lunara import"
  - csv:  period entries
  - xlsx: periods, appointments and contacts
  - pdf:  one-page health summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRecordStore(cmd, func(records *store.Store) error {
			return cli.RunExportCommand(records, exportFormat, exportOutput, time.Now(), today(), cmd.OutOrStdout())
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace all records with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRecordStore(cmd, func(records *store.Store) error {
			return cli.RunImportCommand(records, args[0], cmd.OutOrStdout())
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset every record to its defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRecordStore(cmd, func(records *store.Store) error {
			return cli.RunClearCommand(records, clearConfirm, cmd.OutOrStdout())
		})
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Print the next period forecast and pregnancy progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRecordStore(cmd, func(records *store.Store) error {
			return cli.RunPredictCommand(records, today(), cmd.OutOrStdout())
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json, csv, xlsx or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (defaults to the report's file name)")
	clearCmd.Flags().BoolVar(&clearConfirm, "yes", false, "confirm that all records should be reset")
}

func withRecordStore(cmd *cobra.Command, run func(records *store.Store) error) error {
	records, err := cli.OpenRecordStore(cmd.Context(), cfg.Storage, logger)
	if err != nil {
		return err
	}
	runErr := run(records)
	if err := records.Close(); err != nil {
		logger.Error("record store close failed", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// today is the local wall clock of the configured timezone, expressed in UTC.
func today() time.Time {
	local := time.Now().In(mustLoadLocation(cfg.Server.Timezone))
	year, month, day := local.Date()
	return time.Date(year, month, day, local.Hour(), local.Minute(), local.Second(), 0, time.UTC)
}

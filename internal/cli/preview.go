package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/runlog/internal/adapters/notion"
	"github.com/emiliopalmerini/runlog/internal/adapters/storage"
	"github.com/emiliopalmerini/runlog/internal/domain"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Print the Notion request a record would produce",
	Long: `Normalizes a training run record and prints the request body that
'runlog upload' would send, without writing the archive or calling Notion.

Examples:
  runlog preview run.json
  runlog preview --example`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

var previewExample bool

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVar(&previewExample, "example", false, "Preview the built-in example run")
}

func runPreview(cmd *cobra.Command, args []string) error {
	run, err := readRun(cmd.InOrStdin(), args, previewExample)
	if err != nil {
		return err
	}

	props, err := domain.Normalize(run, time.Now())
	if err != nil {
		return err
	}

	body, err := notion.BuildRequest(cfg.Notion.DatabaseID, props)
	if err != nil {
		return err
	}

	data, err := storage.Encode(body)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/runlog/internal/adapters/storage"
	"github.com/emiliopalmerini/runlog/internal/domain"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example training run record",
	Long: `Prints a fully populated training run record. Use it as a template:

  runlog example > run.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := storage.Encode(domain.ExampleRun(domain.FormatInstant(time.Now())))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}

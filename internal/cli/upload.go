package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/runlog/internal/dispatch"
	"github.com/emiliopalmerini/runlog/internal/domain"
)

const defaultArchivePath = "model_results.json"

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Archive a training run and upload it to Notion",
	Long: `Reads a training run record as JSON, writes it to a local archive file
and creates a row for it in the configured Notion database.

The record is read from the given file, from stdin when the file is "-" or
omitted, or from the built-in example with --example. Absent fields get
their defaults (Lr 0.001, Epoch 1, In_channel 3, out_channel 1, status 진행중).

Examples:
  runlog upload run.json
  runlog upload --output results/run-42.json run.json
  cat run.json | runlog upload
  runlog upload --example`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

// Flags
var (
	uploadOutput  string
	uploadExample bool
)

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadOutput, "output", "o", defaultArchivePath, "Archive file to write (overwritten)")
	uploadCmd.Flags().BoolVar(&uploadExample, "example", false, "Upload the built-in example run")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	run, err := readRun(cmd.InOrStdin(), args, uploadExample)
	if err != nil {
		return err
	}

	app := NewAppContext(ctx, cfg, logger)
	defer func() {
		if err := app.Close(ctx); err != nil {
			logger.Warn("failed to close resources", "err", err)
		}
	}()

	opts := []dispatch.Option{
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(app.Metrics),
	}
	if app.Uploads != nil {
		opts = append(opts, dispatch.WithHistory(app.Uploads))
	}

	d := dispatch.New(dispatch.Config{
		DatabaseID:  cfg.Notion.DatabaseID,
		ArchivePath: uploadOutput,
	}, app.Archive, app.Sink, opts...)

	upload, err := d.Dispatch(ctx, run)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Uploaded %q to Notion", upload.Title)))
	if upload.PageURL != nil && *upload.PageURL != "" {
		fmt.Fprintf(out, "  Page:    %s\n", *upload.PageURL)
	}
	fmt.Fprintf(out, "  Archive: %s\n", mutedStyle.Render(upload.ArchivePath))
	return nil
}

// readRun loads a record from the named file, from stdin for "-" or no
// argument, or the example record.
func readRun(stdin io.Reader, args []string, example bool) (*domain.TrainingRun, error) {
	if example {
		return domain.ExampleRun(domain.FormatInstant(time.Now())), nil
	}

	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	}

	return domain.DecodeTrainingRun(data)
}

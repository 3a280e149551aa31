package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/runlog/internal/domain"
	"github.com/emiliopalmerini/runlog/internal/ports"
	"github.com/emiliopalmerini/runlog/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded uploads",
	Long: `List previous upload attempts, newest first.

Examples:
  runlog history              # Last 10 uploads
  runlog history --last 50    # Last 50 uploads
  runlog history --failed     # Only failed uploads`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

// Flags
var (
	historyLast   int
	historyFailed bool
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLast, "last", "n", 10, "Number of uploads to show")
	historyCmd.Flags().BoolVar(&historyFailed, "failed", false, "Only show failed uploads")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := OpenHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close(ctx) }()

	opts := ports.ListUploadsOptions{Limit: historyLast}
	if historyFailed {
		failed := domain.UploadFailed
		opts.Status = &failed
	}

	uploads, err := app.Uploads.List(ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(uploads) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No uploads recorded"))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tSTATUS\tTITLE\tARCHIVE\tDETAIL")
	for _, u := range uploads {
		detail := ""
		switch {
		case u.Error != nil:
			detail = *u.Error
		case u.PageURL != nil:
			detail = *u.PageURL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			util.Truncate(u.ID, 8),
			util.FormatDateTime(u.CreatedAt),
			u.Status,
			util.Truncate(u.Title, 30),
			u.ArchivePath,
			util.Truncate(detail, 60),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if failed := countFailed(uploads); failed > 0 {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%d of %d uploads failed", failed, len(uploads))))
	}
	return nil
}

func countFailed(uploads []*domain.Upload) int {
	n := 0
	for _, u := range uploads {
		if u.Status == domain.UploadFailed {
			n++
		}
	}
	return n
}

package commands

import (
	"chat-server/domain"
	"chat-server/repositories"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func journalCmd() *cobra.Command {
	var (
		path  string
		limit int
		event string
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print the session journal, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = os.Getenv("JOURNAL_FILEPATH")
			}
			if path == "" {
				return fmt.Errorf("no journal path: use --path or JOURNAL_FILEPATH")
			}

			// BypassLockGuard lets us read while the server holds the lock
			db, err := badger.Open(badger.DefaultOptions(path).
				WithReadOnly(true).
				WithBypassLockGuard(true).
				WithLoggingLevel(badger.WARNING))
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer db.Close()

			var keep func(domain.SessionRecord) bool
			if event != "" {
				keep = func(r domain.SessionRecord) bool {
					return string(r.Event) == event
				}
			}
			records, err := repositories.NewJournalRepository(db, logs.GetLoggerFromLevel(slog.LevelWarn)).List(limit, keep)
			if err != nil {
				return err
			}
			renderJournal(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "journal directory (default $JOURNAL_FILEPATH)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of events, 0 for all")
	cmd.Flags().StringVar(&event, "event", "", "only show login, rejected or logout events")
	return cmd
}

func renderJournal(w io.Writer, records []domain.SessionRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"At", "Event", "Username", "Remote Addr", "Reason"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, r := range records {
		table.Append([]string{
			r.At.Format(time.RFC3339),
			string(r.Event),
			r.Username,
			r.RemoteAddr,
			r.Reason,
		})
	}
	table.Render()
}

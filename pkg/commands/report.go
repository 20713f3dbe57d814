package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/export"
	"tableflip.dev/stickies/pkg/views"
)

func addReport(topLevel *cobra.Command) {
	raw := false
	width := 100

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the board as a Markdown report",
		Long: `Report renders every note, the deadline list and summary counts as Markdown.

On a terminal the report is rendered; when piped, or with --raw, the Markdown
source is written instead.

Examples:
  stickies report
  stickies report --raw > board.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				md := views.Markdown(s.store.Notes(), time.Now())
				return renderMarkdown(cmd.OutOrStdout(), md, raw || !isTerminal(cmd.OutOrStdout()), width)
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Write Markdown source instead of rendering it.")
	cmd.Flags().IntVar(&width, "width", width, "Wrap rendered output at this many columns.")
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	dir := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the Markdown report to a file",
		Long: `Export writes sticky-notes-report-YYYY-MM-DD.md into --dir, or into the
configured export_dir (the home directory by default).

Examples:
  stickies export
  stickies export --dir ~/Documents`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				target := dir
				if target == "" {
					target = s.cfg.ExportDir
				}
				exp := export.Exporter{
					Picker: export.StaticDirectory(target),
					Writer: export.AtomicFileWriter{},
				}
				path, err := exp.Export(cmd.Context(), s.store.Notes(), time.Now())
				if errors.Is(err, export.ErrCanceled) {
					return errors.New("no export directory configured")
				}
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to write the report into.")
	_ = cmd.MarkFlagDirname("dir")
	topLevel.AddCommand(cmd)
}

func addBackup(topLevel *cobra.Command) {
	list := false

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the board under a timestamped name",
		Example: `
stickies backup
stickies backup --list
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				if list {
					return listBackups(cmd.Context(), cmd.OutOrStdout(), s)
				}
				if !s.store.CreateBackup(cmd.Context()) {
					return errors.New("backup failed, run with --verbose for details")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "backed up %d notes\n", s.store.Len())
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List existing backups instead of creating one.")
	topLevel.AddCommand(cmd)
}

func listBackups(ctx context.Context, w io.Writer, s *session) error {
	names, ok := s.tiers.Backups(ctx)
	if !ok {
		return errors.New("the configured store cannot list backups")
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintln(w, "no backups")
		return nil
	}
	for _, name := range names {
		_, _ = fmt.Fprintln(w, name)
	}
	return nil
}

func renderMarkdown(w io.Writer, md string, raw bool, width int) error {
	if raw {
		_, err := io.WriteString(w, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/bmdeck/internal/codec"
	"github.com/nikbrunner/bmdeck/internal/culler"
	"github.com/nikbrunner/bmdeck/internal/launcher"
	"github.com/nikbrunner/bmdeck/internal/model"
	"github.com/nikbrunner/bmdeck/internal/picker"
	"github.com/nikbrunner/bmdeck/internal/search"
	"github.com/nikbrunner/bmdeck/internal/store"
)

// errNoFolder is returned when a folder reference matches nothing.
var errNoFolder = errors.New("no such folder")

// newTable returns a borderless table for listing output.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		})
}

// resolveFolder finds a folder by 1-based position or case-insensitive title.
func resolveFolder(h model.Hierarchy, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(h) {
			return -1, fmt.Errorf("%w: position %d of %d", errNoFolder, n, len(h))
		}
		return n - 1, nil
	}
	for i, f := range h {
		if strings.EqualFold(f.Title, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", errNoFolder, ref)
}

func newImportCmd(app *App) *cobra.Command {
	var appendMode bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the hierarchy with a JSON backup or browser HTML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if appendMode {
				err = s.AppendFolders(cmd.Context(), h)
			} else {
				err = s.ReplaceAll(cmd.Context(), h)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d folders, %d bookmarks\n", len(h), h.BookmarkCount())
			return nil
		},
	}
	cmd.Flags().BoolVar(&appendMode, "append", false, "Add the imported folders after the existing ones")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var (
		format   string
		outDir   string
		verbatim bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dated JSON backup and/or Netscape HTML export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "html" && format != "both" {
				return fmt.Errorf("unknown format %q (want json, html or both)", format)
			}
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			dir := outDir
			if dir == "" {
				dir = app.cfg.ExportDir
			}
			h := s.Folders()
			now := time.Now()

			if format != "html" {
				path, err := codec.WriteJSONBackup(dir, h, now)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			if format != "json" {
				opts := codec.HTMLOptions{Now: now, Verbatim: verbatim || app.cfg.VerbatimExport}
				path, err := codec.WriteHTMLExport(dir, h, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "both", "What to write (json|html|both)")
	cmd.Flags().StringVar(&outDir, "out", "", "Target directory (default: exportDir from config)")
	cmd.Flags().BoolVar(&verbatim, "verbatim", false, "Write titles and URLs into HTML without escaping")
	return cmd
}

func newFoldersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List folders in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable("#", "TITLE", "LINKS", "OPEN", "ID")
			for i, f := range s.Folders() {
				open := "no"
				if f.IsDefaultOpen() {
					open = "yes"
				}
				t.Row(strconv.Itoa(i+1), f.Title, strconv.Itoa(len(f.Children)), open, f.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <folder> <position>",
		Short: "Move a folder to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			h := s.Folders()
			from, err := resolveFolder(h, args[0])
			if err != nil {
				return err
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			if err := s.MoveFolder(cmd.Context(), from, to-1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to position %d\n", h[from].Title, to)
			return nil
		},
	}
}

func newOpenCmd(app *App) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "open [query...]",
		Short: "Fuzzy-find a bookmark and open it, or open a whole folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			h := s.Folders()
			l := launcher.NewBrowserLauncher()

			if folder != "" {
				i, err := resolveFolder(h, folder)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opening %d bookmarks from %q\n", len(h[i].Children), h[i].Title)
				return launcher.OpenAll(l, h[i].Children)
			}

			if len(args) == 0 {
				return errors.New("a query or --folder is required")
			}
			query := strings.Join(args, " ")
			results := search.Fuzzy(h, query)

			var selected model.Bookmark
			switch len(results) {
			case 0:
				fmt.Fprintf(cmd.OutOrStdout(), "No bookmarks found for %q\n", query)
				return nil
			case 1:
				selected = results[0].Bookmark
			default:
				final, err := tea.NewProgram(picker.New(results, query), tea.WithContext(cmd.Context())).Run()
				if err != nil {
					return err
				}
				p := final.(picker.Picker)
				b, ok := p.Selected()
				if p.Cancelled() || !ok {
					return nil
				}
				selected = b
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Opening: %s\n", selected.Title)
			return l.Open(selected.URL)
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "Open every bookmark of this folder (title or position)")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "List bookmarks whose title fuzzy-matches the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			results := search.Fuzzy(s.Folders(), strings.Join(args, " "))
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches")
				return nil
			}
			t := newTable("TITLE", "FOLDER", "URL")
			for _, r := range results {
				t.Row(r.Bookmark.Title, r.FolderTitle, r.Bookmark.URL)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find dead or unreachable links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			h := s.Folders()
			if folder != "" {
				i, err := resolveFolder(h, folder)
				if err != nil {
					return err
				}
				h = h[i : i+1]
			}

			entries := search.Flatten(h)
			checker := culler.New(culler.Options{
				Concurrency:    app.cfg.Check.Concurrency,
				Timeout:        time.Duration(app.cfg.Check.TimeoutSeconds) * time.Second,
				ExcludeDomains: app.cfg.Check.ExcludeDomains,
				Logger:         app.logger,
			})
			errOut := cmd.ErrOrStderr()
			results := checker.Check(cmd.Context(), entries, func(done, total int) {
				fmt.Fprintf(errOut, "\rChecking %d/%d", done, total)
			})
			if len(entries) > 0 {
				fmt.Fprintln(errOut)
			}

			t := newTable("STATUS", "TITLE", "FOLDER", "URL", "REASON")
			bad := 0
			for _, r := range results {
				if r.Status == culler.Healthy {
					continue
				}
				bad++
				t.Row(r.Status.String(), r.Bookmark.Title, r.FolderTitle, r.Bookmark.URL, r.Reason)
			}
			out := cmd.OutOrStdout()
			if bad > 0 {
				fmt.Fprintln(out, t.Render())
			}
			sum := culler.Summary(results)
			fmt.Fprintf(out, "%d healthy, %d dead, %d unreachable\n",
				sum[culler.Healthy], sum[culler.Dead], sum[culler.Unreachable])
			app.logger.Debug("check finished", zap.Int("checked", len(results)), zap.Int("bad", bad))
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "Only check this folder (title or position)")
	return cmd
}

func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.openStore(cmd.Context()); err != nil {
				return err
			}
			current := store.LoadTheme(cmd.Context(), app.kv)
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}

			var next store.Theme
			switch args[0] {
			case "light":
				next = store.ThemeLight
			case "dark":
				next = store.ThemeDark
			case "toggle":
				next = current.Toggle()
			default:
				return fmt.Errorf("unknown theme %q", args[0])
			}
			if err := store.SaveTheme(cmd.Context(), app.kv, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

func newAddFolderCmd(app *App) *cobra.Command {
	var (
		icon   string
		closed bool
	)

	cmd := &cobra.Command{
		Use:   "add-folder <title>",
		Short: "Append a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.FolderInput{Title: args[0], Icon: icon, DefaultOpen: !closed}.Normalize()
			if err := in.Validate(); err != nil {
				return err
			}
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			id, err := s.CreateFolder(cmd.Context(), in.Title, in.Icon, in.DefaultOpen)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added folder %q (%s)\n", in.Title, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&icon, "icon", "", "Icon URL")
	cmd.Flags().BoolVar(&closed, "closed", false, "Start collapsed")
	return cmd
}

func newAddBookmarkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-bookmark <folder> <title> <url>",
		Short: "Append a bookmark to a folder (title or position)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.BookmarkInput{Title: args[1], URL: args[2]}.Normalize()
			if err := in.Validate(); err != nil {
				return err
			}
			s, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			h := s.Folders()
			i, err := resolveFolder(h, args[0])
			if err != nil {
				return err
			}
			if _, err := s.CreateBookmark(cmd.Context(), h[i].ID, in.Title, in.URL); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %q\n", in.URL, h[i].Title)
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/hymns/internal/formatter"
	"github.com/desertthunder/hymns/internal/models"
	"github.com/desertthunder/hymns/internal/shared"
	"github.com/desertthunder/hymns/internal/store"
	"github.com/desertthunder/hymns/internal/tasks"
	"github.com/urfave/cli/v3"
)

// List prints the hymns matching --tab, --category and --search.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	s, err := r.collection()
	if err != nil {
		return err
	}

	tab, ok := models.ParseTab(cmd.String("tab"))
	if !ok || tab == models.TabAdd || tab == models.TabSettings {
		return fmt.Errorf("%w: --tab must be browse, favorites or home", shared.ErrInvalidArgument)
	}

	category := strings.TrimSpace(cmd.String("category"))
	if category != "" && category != models.CategoryAll && !models.IsCategory(category) {
		return fmt.Errorf("%w: unknown category %q", shared.ErrInvalidArgument, category)
	}

	var listings []models.Listing
	if tab == models.TabHome {
		listings = s.Recent(r.config.UI.RecentLimit)
	} else {
		listings = s.Query(models.Filters{Tab: tab, Category: category, Search: cmd.String("search")})
	}
	r.logger.Debug("listed hymns", "tab", tab, "category", category, "results", len(listings))

	if cmd.Bool("json") {
		return r.writeJSON(listings, true)
	}

	if len(listings) == 0 {
		return r.writePlain("No hymns match the current filters.\n")
	}

	for _, l := range listings {
		star := ""
		if l.IsFavorite {
			star = " ★"
		}
		r.writePlain("%3d. %s%s\n", l.Number, l.Title, star)
		r.writePlain("     %s • %s • id %d\n", l.Author, l.Category, l.ID)
	}
	return r.writePlainln("%d of %d hymns", len(listings), s.Count())
}

// Show prints one hymn, its lyrics or its music sheet reference.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	s, err := r.collection()
	if err != nil {
		return err
	}

	h, err := r.hymnArg(cmd, s)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.Listing{Hymn: h, IsFavorite: s.IsFavorite(h.ID)}, true)
	}

	r.writePlainHeader(fmt.Sprintf("%d. %s", h.Number, h.Title))
	r.writePlain("By: %s\nCategory: %s\n", h.Author, h.Category)
	if h.KeySignature != "" {
		r.writePlain("Key: %s\n", h.KeySignature)
	}
	if h.Tune != "" {
		r.writePlain("Tune: %s\n", h.Tune)
	}

	if cmd.Bool("sheet") {
		if !h.HasSheet() {
			return r.writePlainln("No music sheet available for this hymn.")
		}
		return r.writePlainln("Music sheet: %s", h.MusicSheetURL)
	}

	return r.writePlainln("%s", strings.Join(h.Lyrics, "\n\n"))
}

// Export writes a hymn to [export] dir (or --output) in the selected format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	s, err := r.collection()
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd, s, format)
	}

	h, err := r.hymnArg(cmd, s)
	if err != nil {
		return err
	}

	if cmd.Bool("stdout") {
		var data []byte
		if format == formatter.FormatHymn {
			data, err = s.Export(h.ID)
		} else {
			data, err = formatter.Render(models.NewExportRecord(h), format)
		}
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", strings.TrimRight(string(data), "\n"))
	}

	dir := cmd.String("output")
	if dir == "" {
		dir = r.config.Export.Dir
	}

	record, err := s.Record(h.ID)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(record, dir, format, r.config.Export.Extension)
	if err != nil {
		return err
	}

	r.logger.Info("hymn exported", "id", h.ID, "format", format, "path", path)
	return r.writePlain("✓ Exported %q to %s\n", h.Title, path)
}

// exportAll writes every hymn in display order with the bulk exporter.
func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command, s *store.Store, format formatter.Format) error {
	if cmd.Bool("stdout") {
		return fmt.Errorf("%w: --stdout cannot be combined with --all", shared.ErrInvalidArgument)
	}

	listings := s.Query(models.Filters{Tab: models.TabBrowse})
	records := make([]models.ExportRecord, 0, len(listings))
	for _, l := range listings {
		records = append(records, models.NewExportRecord(l.Hymn))
	}

	dir := cmd.String("output")
	if dir == "" {
		dir = filepath.Join(r.config.Export.Dir, fmt.Sprintf("hymns_export_%d", time.Now().Unix()))
	}

	progressCh := make(chan tasks.ProgressUpdate, len(records)+2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.exporter.BulkExport(ctx, progressCh, records, tasks.BulkExportOpts{
		Format:     format,
		Extension:  r.config.Export.Extension,
		OutputDir:  dir,
		NumWorkers: int(cmd.Int("workers")),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlainHeader("Export Complete!")
	r.writePlain("Exported: %d/%d hymns\n", result.SuccessfulExports, result.TotalHymns)
	if result.FailedExports > 0 {
		r.writePlain("Failed: %d\n", result.FailedExports)
	}
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}

// Copy places the clipboard rendering of a hymn on the system clipboard.
func (r *Runner) Copy(ctx context.Context, cmd *cli.Command) error {
	s, err := r.collection()
	if err != nil {
		return err
	}

	h, err := r.hymnArg(cmd, s)
	if err != nil {
		return err
	}

	if err := r.copyText(formatter.ToText(h)); err != nil {
		return fmt.Errorf("failed to copy %q: %w", h.Title, err)
	}
	return r.writePlain("✓ Copied %q to clipboard\n", h.Title)
}

// Import validates a hymn file and shows where it lands in the collection.
//
// The collection lives for one process, so the imported hymn is only kept by the TUI.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	s, err := r.collection()
	if err != nil {
		return err
	}

	path := cmd.StringArg("path")
	data, err := shared.ReadHymnFile(path)
	if err != nil {
		return err
	}

	h, err := s.Import(data)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.Listing{Hymn: h, IsFavorite: s.IsFavorite(h.ID)}, true)
	}

	r.writePlain("✓ Imported %q by %s\n", h.Title, h.Author)
	r.writePlain("  Number: %d of %d\n", h.Number, s.Count())
	r.writePlain("  Category: %s\n", h.Category)
	r.writePlain("  Verses: %d\n", len(h.Lyrics))
	return r.writePlainln("Hymns are kept for the current session only; use 'hymns tui' and press i to import interactively.")
}

// Sheet opens a hymn's music sheet in the default browser.
func (r *Runner) Sheet(ctx context.Context, cmd *cli.Command) error {
	s, err := r.collection()
	if err != nil {
		return err
	}

	h, err := r.hymnArg(cmd, s)
	if err != nil {
		return err
	}

	if cmd.Bool("print") {
		target, err := shared.SheetURL(h.MusicSheetURL)
		if err != nil {
			return fmt.Errorf("%q: %w", h.Title, err)
		}
		return r.writePlain("%s\n", target)
	}

	if err := r.openSheet(h.MusicSheetURL); err != nil {
		return fmt.Errorf("%q: %w", h.Title, err)
	}
	return r.writePlain("✓ Opened music sheet for %q\n", h.Title)
}

type categoryCount struct {
	Category string `json:"category"`
	Hymns    int    `json:"hymns"`
}

// Categories prints every category with the number of hymns filed under it.
func (r *Runner) Categories(ctx context.Context, cmd *cli.Command) error {
	s, err := r.collection()
	if err != nil {
		return err
	}

	counts := []categoryCount{}
	for _, c := range append(slices.Clone(models.Categories), models.CategoryImported) {
		n := len(s.Query(models.Filters{Tab: models.TabBrowse, Category: c}))
		if c == models.CategoryImported && n == 0 {
			continue
		}
		counts = append(counts, categoryCount{Category: c, Hymns: n})
	}

	if cmd.Bool("json") {
		return r.writeJSON(counts, true)
	}

	for _, c := range counts {
		r.writePlain("%-14s %d\n", c.Category, c.Hymns)
	}
	return nil
}

// ConfigInit writes the default configuration to the --config path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	if r.configPath == "" {
		return fmt.Errorf("%w: --config path is required", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", r.configPath)
	return r.writePlain("✓ Config file created at %s\n", r.configPath)
}

// ConfigShow prints the effective configuration as TOML.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if err := toml.NewEncoder(r.output).Encode(r.config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// hymnArg resolves the id argument to a hymn in s.
func (r *Runner) hymnArg(cmd *cli.Command, s *store.Store) (models.Hymn, error) {
	raw := strings.TrimSpace(cmd.StringArg("id"))
	if raw == "" {
		return models.Hymn{}, fmt.Errorf("%w: hymn id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return models.Hymn{}, fmt.Errorf("%w: hymn id %q is not a number", shared.ErrInvalidArgument, raw)
	}

	return s.Get(id)
}

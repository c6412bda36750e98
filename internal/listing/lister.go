// Package listing discovers the CSV files written by the scrapers.
package listing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scraperdashboard/internal/utils"
	"scraperdashboard/models"
)

// Extension is the case-sensitive suffix a file name must carry to be listed.
const Extension = ".csv"

// Lister scans a fixed, ordered set of source directories.
type Lister struct {
	dirs   []string
	logger *utils.Logger
}

func NewLister(logger *utils.Logger, dirs []string) *Lister {
	d := make([]string, len(dirs))
	copy(d, dirs)
	return &Lister{dirs: d, logger: logger}
}

// Dirs returns the configured source directories in scan order.
func (l *Lister) Dirs() []string {
	out := make([]string, len(l.dirs))
	copy(out, l.dirs)
	return out
}

// List returns one entry per CSV file. Entries of the first directory come
// before those of the second, and within a directory the listing order of
// os.ReadDir is kept. Missing directories are skipped.
func (l *Lister) List(ctx context.Context) ([]models.FileEntry, error) {
	var files []models.FileEntry

	for _, dir := range l.dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !utils.Exists(dir) {
			l.logger.Debug("Skipping missing directory %s", dir)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		source := filepath.Base(dir)
		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), Extension) {
				continue
			}
			files = append(files, models.FileEntry{
				Name:   entry.Name(),
				Path:   filepath.Join(dir, entry.Name()),
				Source: source,
			})
		}
	}

	return files, nil
}

package fab

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProjectExtension is the extension of a KiCad board file.
const ProjectExtension = ".kicad_pcb"

type located struct {
	project string
	ok      bool
}

// Locator infers the KiCad project name of a directory from its board file.
// Results are cached per directory until Reset is called.
type Locator struct {
	reporter Reporter
	logger   *slog.Logger
	cache    map[string]located
}

// NewLocator creates a Locator. A nil reporter or logger discards output.
func NewLocator(reporter Reporter, logger *slog.Logger) *Locator {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Locator{
		reporter: reporter,
		logger:   logger,
		cache:    make(map[string]located),
	}
}

// Locate returns the project name in dir when exactly one board file exists.
// Zero or several candidates both yield ok == false; only the message differs.
func (l *Locator) Locate(dir string) (string, bool) {
	if hit, found := l.cache[dir]; found {
		return hit.project, hit.ok
	}

	matches := findBoardFiles(dir)
	l.logger.Debug("scanned for board files", "dir", dir, "matches", len(matches))

	var result located
	switch len(matches) {
	case 1:
		l.reporter.Info(fmt.Sprintf("Found %s.", filepath.Join(dir, matches[0])))
		result = located{project: strings.TrimSuffix(matches[0], ProjectExtension), ok: true}
	case 0:
		l.reporter.Warning(fmt.Sprintf("Could not determine project name: No %s file found in %s", ProjectExtension, dir))
	default:
		l.reporter.Warning(fmt.Sprintf("Could not determine project name: Found multiple %s files.", ProjectExtension))
	}

	l.cache[dir] = result
	return result.project, result.ok
}

// DefaultFilename guesses the input filename of kind inside dir. The returned
// name is relative to dir.
func (l *Locator) DefaultFilename(kind Kind, dir string) (string, bool) {
	project, ok := l.Locate(dir)
	if !ok {
		return "", false
	}
	name := kind.Profile().DefaultFilename(project)
	l.reporter.Info(fmt.Sprintf("-> Guessing that %s file is %s.", kind, name))
	return name, true
}

// Reset forgets all cached lookups.
func (l *Locator) Reset() {
	clear(l.cache)
}

// findBoardFiles lists regular files in dir with the board extension.
// An unreadable directory yields no matches.
func findBoardFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ProjectExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

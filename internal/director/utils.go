package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SheetsDir is where generated sheets are kept by default
var SheetsDir = filepath.Join("internal", "sheets")

// SheetPath creates a timestamped sheet filename in dir
func SheetPath(dir, name string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("sheet_%s_%s.yaml", name, timestamp))
}

// FindLatestSheet finds the most recent sheet file in dir
func FindLatestSheet(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read sheets directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var sheets []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sheets = append(sheets, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(sheets) == 0 {
		return "", fmt.Errorf("no sheet files found in %s", dir)
	}

	// Newest first
	sort.Slice(sheets, func(i, j int) bool {
		return sheets[i].mod.After(sheets[j].mod)
	})

	return sheets[0].path, nil
}

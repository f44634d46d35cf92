package parser

import (
	"os"
	"path/filepath"

	"github.com/rubensayshi/ccusagebar/internal/domain"
)

// Scan walks the data directory, parses every .jsonl file, and returns the
// deduplicated entries in ascending timestamp order. A missing or
// unreadable directory means no usage yet, not an error.
func Scan(dataDir string) []domain.UsageEntry {
	var paths []string
	_ = filepath.Walk(dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})

	all := make([]domain.UsageEntry, 0, len(paths)*50)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		result := ParseReader(f)
		all = append(all, result.Entries...)
		f.Close()
	}

	return Dedup(all)
}

// Package rawcsv discovers and reads the raw per-season, per-round snapshot
// files laid out as {root}/{year}/rodada-{n}.csv.
package rawcsv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Season is one retained season directory and its round files, in round order.
type Season struct {
	Year  int
	Files []string
}

var roundNumberRe = regexp.MustCompile(`(\d+)\D*$`)

// DiscoverSeasons lists season subdirectories of root whose names are purely
// numeric, keeps the maxSeasons most recent, and globs their round files with
// pattern. Seasons come back in ascending year order so concatenation is
// chronological; files within a season are ordered by round number.
func DiscoverSeasons(root string, maxSeasons int, pattern string) ([]Season, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingRoot, root)
	}

	years := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		year, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSeasons, root)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if len(years) > maxSeasons {
		years = years[:maxSeasons]
	}
	// Back to chronological order for processing.
	sort.Ints(years)

	seasons := make([]Season, 0, len(years))
	for _, year := range years {
		files, err := filepath.Glob(filepath.Join(root, strconv.Itoa(year), pattern))
		if err != nil {
			return nil, fmt.Errorf("glob season %d: %w", year, err)
		}
		sortByRound(files)
		seasons = append(seasons, Season{Year: year, Files: files})
	}
	return seasons, nil
}

// RoundFromFilename extracts the trailing round number from a file name like
// rodada-12.csv. Returns 0 when no number is present.
func RoundFromFilename(path string) int {
	base := filepath.Base(path)
	base = base[:len(base)-len(filepath.Ext(base))]
	m := roundNumberRe.FindStringSubmatch(base)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// sortByRound orders file paths by their round number so "rodada-2" sorts
// before "rodada-10", which lexical ordering would get wrong.
func sortByRound(files []string) {
	sort.SliceStable(files, func(i, j int) bool {
		return RoundFromFilename(files[i]) < RoundFromFilename(files[j])
	})
}

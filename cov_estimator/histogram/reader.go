package histogram

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Load reads a k-mer multiplicity histogram from a text file with one
// `<multiplicity> <count>` pair per line. Levels may appear in any order
// and need not be contiguous; missing levels are zero. Malformed lines and
// unreadable files are fatal to the run and reported as errors here.
func Load(path string) (*Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open histogram %s", path)
	}
	defer f.Close()

	levels := make(map[int]int64)
	maxLevel := 0
	h := &Histogram{}

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errors.Errorf("%s:%d: expected `<multiplicity> <count>`, got %q", path, lineno, line)
		}
		level, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad multiplicity", path, lineno)
		}
		cnt, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: bad count", path, lineno)
		}

		levels[level] = cnt
		if level > maxLevel {
			maxLevel = level
		}
		if level == 1 {
			h.ObservedOnes = cnt
		}
		if level >= 2 {
			h.UniqueKmers += cnt
			h.AllKmers += float64(level) * float64(cnt)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read histogram %s", path)
	}

	h.Counts = make([]int64, maxLevel)
	for level, cnt := range levels {
		if level >= 0 && level < maxLevel {
			h.Counts[level] = cnt
		}
	}
	return h, nil
}

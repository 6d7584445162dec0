package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadManifest reads a flat audio manifest: one audio file name per line,
// the drillable token being the file name without its extension. Blank
// lines and non-audio lines are skipped.
func LoadManifest(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var items []Item
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasSuffix(line, ".mp3") {
			continue
		}
		items = append(items, Item{
			ID:        strings.TrimSuffix(line, ".mp3"),
			AudioFile: line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return New(items), nil
}

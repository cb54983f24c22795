package importer

import (
	"fmt"
	"strings"
)

// checkHeader reports every required column missing from header.
func checkHeader(header, required []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("csv header is missing required column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

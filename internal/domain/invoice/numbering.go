// internal/domain/invoice/numbering.go
package invoice

import (
	"fmt"
	"strconv"
	"strings"
)

// NextInSeries derives the next number from the current maximum of a series.
// An empty maximum starts the series at 1; a suffix that fails to parse also
// restarts at 1. Sequences are zero-padded to four digits.
func NextInSeries(prefix, last string) string {
	seq := 1
	if last != "" {
		suffix := strings.TrimPrefix(last, prefix)
		if n, err := strconv.Atoi(suffix); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}

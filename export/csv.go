package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Write writes the delay ladder to w as CSV with an "Attempt,Delay(ms)"
// header. Attempts are numbered from 1 to match operator-facing reports.
func Write(w io.Writer, delays []time.Duration) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Attempt", "Delay(ms)"}); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i, d := range delays {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(d.Milliseconds(), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+1, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}

	return nil
}

// WriteFile writes the delay ladder to the named file, creating or
// truncating it.
func WriteFile(path string, delays []time.Duration) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()

	return Write(f, delays)
}

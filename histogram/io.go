package histogram

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Read parses up to n records from r. With n > 0 exactly n records are
// required and anything after the n-th record is ignored; with n <= 0 all
// records are read. Blank lines are skipped.
//
// With FormatOutput the row indices are the record positions.
func Read(r io.Reader, n int, f Format) (*Histogram, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, f)
	}

	h := &Histogram{}
	if n > 0 {
		h.Rows = make([]int, 0, n)
		h.Channels = make([]int, 0, n)
		h.Counts = make([]int, 0, n)
	}

	sc := bufio.NewScanner(r)
	line := 0
	cols := f.Columns()

	for sc.Scan() {
		line++

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if cols == 0 {
			switch len(fields) {
			case 2, 3:
				cols = len(fields)
			default:
				return nil, fmt.Errorf("%w: line %d: %d fields, want 2 or 3", ErrMalformedRecord, line, len(fields))
			}
		}

		if len(fields) != cols {
			return nil, fmt.Errorf("%w: line %d: %d fields, want %d", ErrMalformedRecord, line, len(fields), cols)
		}

		vals := make([]int, cols)
		for i, s := range fields {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: field %d: %q is not an integer", ErrMalformedRecord, line, i+1, s)
			}

			vals[i] = v
		}

		row := h.Len()
		if cols == 3 {
			row = vals[0]
			vals = vals[1:]
		}

		if vals[1] < 0 {
			return nil, fmt.Errorf("%w: line %d: negative count %d", ErrMalformedRecord, line, vals[1])
		}

		h.Rows = append(h.Rows, row)
		h.Channels = append(h.Channels, vals[0])
		h.Counts = append(h.Counts, vals[1])

		if n > 0 && h.Len() == n {
			return h, nil
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("histogram: read: %w", err)
	}

	if n > 0 {
		return nil, fmt.Errorf("%w: got %d records, want %d", ErrShortInput, h.Len(), n)
	}

	return h, nil
}

// ReadFile reads a histogram from the named file. See [Read].
func ReadFile(path string, n int, f Format) (*Histogram, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("histogram: %w", err)
	}
	defer file.Close()

	h, err := Read(file, n, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return h, nil
}

// Write writes one record per line in format f.
func Write(w io.Writer, h *Histogram, f Format) error {
	if f != FormatSource && f != FormatOutput {
		return fmt.Errorf("%w: cannot write %v", ErrInvalidFormat, f)
	}

	if err := h.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for i := range h.Counts {
		var err error
		if f == FormatSource {
			_, err = fmt.Fprintf(bw, "%d %d %d\n", h.Rows[i], h.Channels[i], h.Counts[i])
		} else {
			_, err = fmt.Fprintf(bw, "%d %d\n", h.Channels[i], h.Counts[i])
		}

		if err != nil {
			return fmt.Errorf("histogram: write: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("histogram: write: %w", err)
	}

	return nil
}

// WriteFile writes h to path through a temporary file in the same directory
// that is renamed into place once complete. On error path is left untouched.
func WriteFile(path string, h *Histogram, f Format) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("histogram: %w", err)
	}

	if err = Write(tmp, h, f); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("histogram: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("histogram: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("histogram: %w", err)
	}

	return nil
}

package parts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
)

// Combine appends the lines of parts 1..n, in that order and each followed by
// a newline, to the combined artifact. It returns the number of bytes written.
//
// Missing or unreadable parts are logged and skipped. An error is returned
// only when the combined artifact itself cannot be written.
func Combine(ctx context.Context, s *Store, n int, logger *log.Logger) (int64, error) {
	w, err := s.Create(ctx, s.CombinedName())
	if err != nil {
		return 0, err
	}

	written, writeErr := combineInto(ctx, w, s, n, logger)
	closeErr := w.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return written, fmt.Errorf("parts: combine: %w", err)
	}

	logf(logger, "File parts combined successfully.")
	return written, nil
}

func combineInto(ctx context.Context, w io.Writer, s *Store, n int, logger *log.Logger) (int64, error) {
	var written int64
	for id := 1; id <= n; id++ {
		lines, err := s.ReadLines(ctx, s.PartName(id))
		if err != nil {
			logf(logger, "Skipping part %d: %v", id, err)
			continue
		}
		for _, line := range lines {
			nw, err := io.WriteString(w, line+"\n")
			written += int64(nw)
			if err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

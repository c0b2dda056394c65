package parts

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// CombinedObject is the object name of the combined artifact.
const CombinedObject = "complete_file.txt"

// Store reads and writes named artifacts under a prefix in a bucket.
type Store struct {
	bucket *blob.Bucket
	prefix string
}

// NewStore returns a store rooted at prefix within bucket.
func NewStore(bucket *blob.Bucket, prefix string) *Store {
	return &Store{bucket: bucket, prefix: prefix}
}

// PartName returns the artifact name for part id.
func (s *Store) PartName(id int) string {
	return s.prefix + "part_" + strconv.Itoa(id) + ".txt"
}

// CombinedName returns the artifact name of the combined result.
func (s *Store) CombinedName() string {
	return s.prefix + CombinedObject
}

// Create opens a writer for name. The artifact is committed on Close.
// Callers must Close the writer on every path.
func (s *Store) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	w, err := s.bucket.NewWriter(ctx, name, &blob.WriterOptions{ContentType: "text/plain"})
	if err != nil {
		return nil, fmt.Errorf("parts: create %s: %w", name, err)
	}
	return w, nil
}

// WriteAll writes data to name in one call.
func (s *Store) WriteAll(ctx context.Context, name string, data []byte) error {
	if err := s.bucket.WriteAll(ctx, name, data, &blob.WriterOptions{ContentType: "text/plain"}); err != nil {
		return fmt.Errorf("parts: write %s: %w", name, err)
	}
	return nil
}

// ReadLines returns the lines stored in name, without line terminators.
func (s *Store) ReadLines(ctx context.Context, name string) ([]string, error) {
	r, err := s.bucket.NewReader(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("parts: open %s: %w", name, err)
	}
	defer r.Close()

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parts: read %s: %w", name, err)
	}
	return lines, nil
}

// Delete removes name. Deleting an absent artifact is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.bucket.Delete(ctx, name); err != nil && !isNotExist(err) {
		return fmt.Errorf("parts: delete %s: %w", name, err)
	}
	return nil
}

// Exists reports whether name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.bucket.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("parts: stat %s: %w", name, err)
	}
	return ok, nil
}

// isNotExist returns true if the error indicates the object doesn't exist.
func isNotExist(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}

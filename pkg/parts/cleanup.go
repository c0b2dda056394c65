package parts

import (
	"context"
	"errors"
	"log"
	"path"
)

// DeleteParts removes the artifacts of parts 1..n. Absent parts are skipped.
// Deletion continues past failures; all failures are returned joined.
func DeleteParts(ctx context.Context, s *Store, n int, logger *log.Logger) error {
	var errs []error
	for id := 1; id <= n; id++ {
		if err := deleteFile(ctx, s, s.PartName(id), logger); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reset removes the artifacts of parts 1..n and the combined artifact.
// It is safe to call when nothing exists.
func Reset(ctx context.Context, s *Store, n int, logger *log.Logger) error {
	return errors.Join(
		DeleteParts(ctx, s, n, logger),
		deleteFile(ctx, s, s.CombinedName(), logger),
	)
}

func deleteFile(ctx context.Context, s *Store, name string, logger *log.Logger) error {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		logf(logger, "Could not check %s: %v", name, err)
		return err
	}
	if !exists {
		return nil
	}
	if err := s.Delete(ctx, name); err != nil {
		logf(logger, "Could not delete %s: %v", name, err)
		return err
	}
	logf(logger, "Deleted file: %s", path.Base(name))
	return nil
}

//go:build integration

package downloader_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	_ "gocloud.dev/blob/s3blob"

	"github.com/ligustah/segfetch/internal/coordinator"
	"github.com/ligustah/segfetch/internal/downloader"
	"github.com/ligustah/segfetch/internal/feed"
	"github.com/ligustah/segfetch/internal/testutils"
	"github.com/ligustah/segfetch/pkg/parts"
)

func TestIntegrationRunAgainstMinio(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	t.Log("Starting Minio container...")
	minio := testutils.StartMinioContainer(t, ctx, "segfetch-test")
	defer func() {
		if err := minio.Close(ctx); err != nil {
			t.Logf("failed to terminate minio container: %v", err)
		}
	}()

	bucket, err := minio.OpenBucket(ctx)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	logger := log.New(os.Stderr, "[segfetch] ", 0)

	for _, kind := range []coordinator.Kind{coordinator.KindPoll, coordinator.KindBarrier} {
		t.Run(string(kind)+"/steady", func(t *testing.T) {
			prefix := "runs/" + string(kind) + "/steady/"
			store := parts.NewStore(bucket, prefix)

			res, err := downloader.Run(ctx, store, downloader.Options{
				Parts:       4,
				Timeout:     30 * time.Second,
				Coordinator: kind,
				Feed:        feed.New(feed.Steady(4, 100*time.Millisecond)),
				Logger:      logger,
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !res.Succeeded() {
				t.Fatalf("expected success, got %v", res.Err())
			}

			lines, err := store.ReadLines(ctx, store.CombinedName())
			if err != nil {
				t.Fatalf("ReadLines: %v", err)
			}
			want := []string{"Content of part 1", "Content of part 2", "Content of part 3", "Content of part 4"}
			if len(lines) != len(want) {
				t.Fatalf("combined artifact has %d lines, want %d", len(lines), len(want))
			}
			for i := range want {
				if lines[i] != want[i] {
					t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
				}
			}

			keys := testutils.ListKeys(t, ctx, bucket, prefix)
			if len(keys) != 1 || keys[0] != store.CombinedName() {
				t.Errorf("expected only the combined artifact, got %v", keys)
			}
		})

		t.Run(string(kind)+"/mixed", func(t *testing.T) {
			prefix := "runs/" + string(kind) + "/mixed/"
			store := parts.NewStore(bucket, prefix)

			res, err := downloader.Run(ctx, store, downloader.Options{
				Parts:       4,
				Timeout:     4 * time.Second,
				Coordinator: kind,
				Feed:        feed.New(feed.Mixed()),
				Logger:      logger,
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Succeeded() {
				t.Fatal("expected failure for the mixed fixture")
			}

			if keys := testutils.ListKeys(t, ctx, bucket, prefix); len(keys) != 0 {
				t.Errorf("expected no artifacts after cleanup, got %v", keys)
			}
		})
	}
}

package parts_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"

	"github.com/ligustah/segfetch/pkg/parts"
)

func Example() {
	ctx := context.Background()
	bucket, _ := blob.OpenBucket(ctx, "mem://")
	defer bucket.Close()

	store := parts.NewStore(bucket, "downloads/")

	// Each part is written by its own task; the writer must always be closed.
	for id := 1; id <= 3; id++ {
		w, err := store.Create(ctx, store.PartName(id))
		if err != nil {
			panic(err)
		}
		fmt.Fprintf(w, "Content of part %d", id)
		w.Close()
	}

	// Combine in part order, then drop the parts.
	if _, err := parts.Combine(ctx, store, 3, nil); err != nil {
		panic(err)
	}
	parts.DeleteParts(ctx, store, 3, nil)

	lines, _ := store.ReadLines(ctx, store.CombinedName())
	for _, line := range lines {
		fmt.Println(line)
	}

	// Output:
	// Content of part 1
	// Content of part 2
	// Content of part 3
}

func ExampleReset() {
	ctx := context.Background()
	bucket, _ := blob.OpenBucket(ctx, "mem://")
	defer bucket.Close()

	store := parts.NewStore(bucket, "")
	store.WriteAll(ctx, store.PartName(2), []byte("left over from a crashed run"))

	logger := log.New(os.Stdout, "", 0)
	if err := parts.Reset(ctx, store, 4, logger); err != nil {
		panic(err)
	}

	// Nothing left to delete: still no error.
	fmt.Println(parts.Reset(ctx, store, 4, logger) == nil)

	_, err := store.ReadLines(ctx, store.PartName(2))
	fmt.Println(err != nil)

	// Output:
	// Deleted file: part_2.txt
	// true
	// true
}

// Package parts stores, combines and cleans up part artifacts in a bucket.
//
// Part artifacts are small blobs written by individual part tasks. Once every
// part has been fetched they are concatenated, line by line and in ascending
// part order, into a single combined artifact. The package is storage-agnostic
// via gocloud.dev/blob.
//
// # Storage Layout
//
//	{bucket}/{prefix}part_1.txt
//	{bucket}/{prefix}part_2.txt
//	...
//	{bucket}/{prefix}complete_file.txt   (after a successful combine)
//
// # Cleanup
//
// [Reset] removes every part artifact and the combined artifact; [DeleteParts]
// removes only the parts. Both are idempotent: absent artifacts are not an
// error.
package parts

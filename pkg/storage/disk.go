// Package storage stores uploaded assets (avatar images) behind a small
// disk abstraction. The "local" driver writes under STORAGE_LOCAL_ROOT
// and is always available; the "s3" driver boots when S3_BUCKET is set
// and works with anything S3-compatible (AWS, MinIO, R2, Spaces).
//
//	storage.Connect()
//	storage.PutStream("avatars/42-abc.png", file)
//	url := storage.URL("avatars/42-abc.png")
package storage

import "io"

// Disk is the driver contract. Paths are slash-separated and relative
// to the disk root.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller closes it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. Missing files are not an error.
	Delete(path string) error
}

// Package fsutil provides the file system lookups forge needs: glob matching
// for descriptors and walking up parent directories.
package fsutil

package fs

import (
	iofs "io/fs"
)

// FileSystem is what the static export needs to write a site.
type FileSystem interface {
	WriteFile(path string, data []byte, perm iofs.FileMode) error
	MkdirAll(path string, perm iofs.FileMode) error
}

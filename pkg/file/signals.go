package file

import (
	"context"

	"github.com/zoobzio/capitan"
)

var (
	// FileWritten is emitted when a store persists its document.
	FileWritten = capitan.NewSignal(
		"tweak.file.written",
		"Document written to disk",
	)

	// FileFailed is emitted when a store cannot read or write its
	// file, or the watcher reports an error.
	FileFailed = capitan.NewSignal(
		"tweak.file.failed",
		"Document file operation failed",
	)
)

var (
	// KeyPath is the document file path.
	KeyPath = capitan.NewStringKey("path")

	// KeyError is the failure message.
	KeyError = capitan.NewStringKey("error")
)

func failed(path string, err error) {
	capitan.Emit(context.Background(), FileFailed,
		KeyPath.Field(path),
		KeyError.Field(err.Error()),
	)
}

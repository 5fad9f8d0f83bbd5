package translation

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	documentMalformedCode  = "TRANSLATION_DOCUMENT_MALFORMED"
	documentEncodeCode     = "TRANSLATION_DOCUMENT_ENCODE_FAILED"
	storageUnsupportedCode = "TRANSLATION_STORAGE_UNSUPPORTED"
	columnAssignCode       = "TRANSLATION_COLUMN_ASSIGN_FAILED"
)

var (
	// ErrMalformedDocument indicates the backing column holds something that is
	// not a JSON object keyed by locale.
	ErrMalformedDocument = errors.New("translation: malformed translation document")
	// ErrRecordRequired indicates an accessor was invoked without a host record.
	ErrRecordRequired = errors.New("translation: record is required")
	// ErrUnsupportedStorage indicates the backing column holds a Go value that
	// cannot carry a translation document, such as a number.
	ErrUnsupportedStorage = errors.New("translation: unsupported document storage")
)

func wrapDecodeError(err error, column string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnsupportedStorage) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "read translation document").
			WithTextCode(storageUnsupportedCode).
			WithMetadata(map[string]any{"column": column})
	}
	return goerrors.Wrap(errors.Join(ErrMalformedDocument, err), goerrors.CategoryInternal, "decode translation document").
		WithTextCode(documentMalformedCode).
		WithMetadata(map[string]any{"column": column})
}

func wrapEncodeError(err error, column string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "encode translation document").
		WithTextCode(documentEncodeCode).
		WithMetadata(map[string]any{"column": column})
}

func wrapAssignError(err error, column string) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "assign translation column").
		WithTextCode(columnAssignCode).
		WithMetadata(map[string]any{"column": column})
}

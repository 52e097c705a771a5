package ingest

import "errors"

var (
	ErrEmptyFile         = errors.New("file contains no records")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingParties    = errors.New("record is missing sender or receiver")
	ErrBadAmount         = errors.New("record has a missing or invalid amount")
)

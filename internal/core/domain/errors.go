package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedFingerprint is returned when a fingerprint record on disk
	// cannot be decoded. Fatal for the run: an incomplete record set would
	// leave holes in the dependency graph.
	ErrMalformedFingerprint = zerr.New("malformed fingerprint record")

	// ErrMalformedDepInfo is returned when a dep-info file's first line does
	// not have the "{output}: {sources}" shape.
	ErrMalformedDepInfo = zerr.New("malformed dep-info file")

	// ErrNoTempDir is returned when live mode has no usable temp directory
	// to relocate deleted directories into.
	ErrNoTempDir = zerr.New("no temp directory configured")

	// ErrMetadataCommand is returned when the cargo metadata subprocess
	// fails.
	ErrMetadataCommand = zerr.New("cargo metadata failed")
)

package domain

import "go.trai.ch/zerr"

var (
	// ErrParallelMergeUnsupported is returned by the glue store when a
	// parallel-build worker merge is attempted. This is a capability
	// gap surfaced loudly, never a silent no-op.
	ErrParallelMergeUnsupported = zerr.New("parallel builds are not supported by the glue store")

	// ErrGlueKeyNotFound is returned when a paste request names a key
	// the store does not hold.
	ErrGlueKeyNotFound = zerr.New("glue key not found")

	// ErrEngineUnavailable is returned when the execution engine could
	// not be loaded. Callers treat it as non-fatal for the build.
	ErrEngineUnavailable = zerr.New("execution engine unavailable")

	// ErrNoImageData is returned when a figure paste resolves to a
	// bundle without any image representation.
	ErrNoImageData = zerr.New("no image data in mime bundle")

	// ErrCacheDisabled is returned when caching operations are invoked
	// while the cache location is configured off.
	ErrCacheDisabled = zerr.New("notebook cache is disabled")

	// ErrNoDocumentsSpecified is returned when a build pass is started
	// with an empty document set.
	ErrNoDocumentsSpecified = zerr.New("no documents specified")
)

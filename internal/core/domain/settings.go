package domain

// CacheMode describes how the cache location setting was given.
type CacheMode int

const (
	// CacheDisabled turns execution caching off entirely.
	CacheDisabled CacheMode = iota
	// CacheDefault uses the default on-disk location beside sources.
	CacheDefault
	// CachePath uses an explicit directory.
	CachePath
)

// Settings is the configuration surface consumed by a build pass.
type Settings struct {
	// ExecuteNotebooks gates the whole stage-and-execute step.
	ExecuteNotebooks bool
	// ForceRun stages every candidate regardless of existing outputs.
	ForceRun bool
	// CacheMode and CacheDir resolve the cache location tri-state
	// (true, explicit path, disabled).
	CacheMode CacheMode
	CacheDir  string
	// ExcludePatterns are path substrings; a matching document is
	// neither staged nor cached.
	ExcludePatterns []string
	// OutputDir is the build destination; traceback reports land in
	// OutputDir/reports and the glue snapshot beside it.
	OutputDir string
	// Parallelism bounds concurrent notebook executions in a batch.
	Parallelism int
}

// DefaultCacheDirName is the directory created beside the sources when
// the cache location is configured as a bare "true".
const DefaultCacheDirName = ".nbbuild_cache"

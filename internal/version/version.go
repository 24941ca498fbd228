package version

// Overridden at build time via -ldflags.
var (
	VERSION = "dev"
	COMMIT  = "unknown"
)

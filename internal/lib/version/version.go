package version

// VERSION is set at build time via -ldflags.
var VERSION = "dev"

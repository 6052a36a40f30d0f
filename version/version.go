package version

// Version is overridable at build time with -ldflags.
var Version = "0.1.0"

func GetCurrentVersion() string {
	return Version
}

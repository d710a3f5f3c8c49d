// Package build holds the version stamped into blurb at link time:
//
//	go build -ldflags "-X github.com/python/blurb/internal/build.Version=1.3.0"
package build

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Package version holds the build version, overridable at link time:
//
//	go build -ldflags "-X github.com/epmk/stackflow/pkg/version.Version=v1.2.3"
package version

var Version = "dev"

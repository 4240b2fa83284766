// Package version provides the cpitd tool version.
package version

// Version is the cpitd tool version.
// Can be overridden at build time with:
//
//	go build -ldflags "-X github.com/ingo-eichhorst/cpitd/pkg/version.Version=2.0.1"
var Version = "dev"

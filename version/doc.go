// Package version exposes build metadata for the jobportal binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/careercode/jobportal/version.Version=1.2.3 \
//	  -X github.com/careercode/jobportal/version.Branch=main \
//	  -X github.com/careercode/jobportal/version.Revision=abc1234"
//
// Unset revision and build time fall back to the VCS stamp embedded by the Go toolchain.
package version

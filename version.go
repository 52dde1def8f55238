package accrual

// release is the semantic version of the accrual module. It is bumped by
// hand on every tagged release and carries the -dev suffix in between.
const release = "v0.1.0-dev"

// GitCommit is set at build time, for example
//
//	go build -ldflags "-X github.com/iov-one/accrual.GitCommit=$(git rev-parse --short HEAD)"
var GitCommit = ""

// Version returns the release, followed by the commit it was built from
// when known. accruald reports it with --version.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}

package version

import "fmt"

// Set at build time with -ldflags "-X nbtkit/version.GitTag=...".
var GitCommit string
var GitTag string
var UserAgent string

func init() {
	UserAgent = fmt.Sprintf("nbt/%s+%s", GitTag, GitCommit)
}

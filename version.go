package scrawl

import _ "embed"

// Version is the release of the library and the scrawl binary.
//
//go:embed VERSION
var Version string

package display

import (
	"runtime"
	"strings"
)

// Platform labels the measurement environment, e.g. "LINUX DEBUG". Numbers
// from debug builds carry race detector and inlining differences and are
// not comparable with release builds.
func Platform() string {
	return strings.ToUpper(runtime.GOOS) + " " + flavour
}

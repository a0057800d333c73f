package ad

import (
	"github.com/golang/glog"
)

// Tracing and fatal-path diagnostics. Recoverable conditions (shape
// mismatch, domain errors) are surfaced as ordinary errors in
// errors.go; this file covers the condition that is not recoverable
// at all, "this is structurally impossible, abort" (glog.Fatalf),
// and opt-in verbose tracing of the recording/replay lifecycle
// (glog.V(1), enabled with -v=1).

func fatalf(format string, args ...interface{}) {
	glog.Fatalf(format, args...)
}

func tracef(format string, args ...interface{}) {
	glog.V(1).Infof(format, args...)
}

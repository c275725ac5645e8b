package tessellate

import (
	"io"
	"log"
)

// discardLogger is the zero-value-safe default every entry point falls back
// to when the caller passes a nil *log.Logger, generalizing the teacher's
// verbose bool + log.Printf pattern (model3d/parameterization.go) to a
// redirectable logger value instead of a bool flag.
var discardLogger = log.New(io.Discard, "", 0)

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return discardLogger
	}
	return l
}

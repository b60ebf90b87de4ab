package board

import "github.com/go-logr/logr"

var logger = logr.Discard()

// SetLogger sets the logger used for debug validation output.
func SetLogger(l logr.Logger) {
	logger = l
}

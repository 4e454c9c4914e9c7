package tools

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

var isEnabled = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

// Logs progress messages at info level. Timestamps are added by glog.
func LogOutput(val ...interface{}) {
	if !isEnabled {
		return
	}
	parts := make([]string, len(val))
	for i, v := range val {
		parts[i] = fmt.Sprint(v)
	}
	glog.InfoDepth(1, strings.Join(parts, " "))
}

// Package format holds the display helpers shared by the console views.
package format

import (
	"math"
	"strconv"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes formats n with binary units and at most two decimals, e.g.
// "1.5 KB". Zero and negative sizes are "0 B".
func Bytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	v, i := float64(n), 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// Date formats t as YYYY/MM/DD in local time, or "-" when absent.
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006/01/02")
}

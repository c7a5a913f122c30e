package lock

import (
	"math"

	"github.com/shirou/gopsutil/v4/process"
)

// processAlive reports whether pid is running. known is false when the
// process table could not be read.
func processAlive(pid int) (alive, known bool) {
	if pid <= 0 || int64(pid) > math.MaxInt32 {
		return false, false
	}
	exists, err := process.PidExists(int32(pid))
	if err != nil {
		return false, false
	}
	return exists, true
}

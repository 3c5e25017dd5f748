package reservation

import (
	"math"
	"time"
)

// CostCents bills the elapsed time at the snapshotted hourly rate.
// Duration is fractional hours, not truncated; the result is rounded
// half-up to a whole cent, matching round(hours * rate, 2) in decimal
// units. A zero-length stay bills zero.
func CostCents(parkingTime, leavingTime time.Time, costPerHourCents int64) int64 {
	hours := leavingTime.Sub(parkingTime).Seconds() / 3600.0
	if hours <= 0 {
		return 0
	}
	return int64(math.Floor(hours*float64(costPerHourCents) + 0.5))
}

package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Los_Angeles")
	if err != nil {
		panic(err)
	}
}

// the clerk system publishes everything in LA local time; run
// timestamps and date math must use its clock no matter where the
// batch job happens to be deployed.
func Now() time.Time {
	return time.Now().In(Location)
}

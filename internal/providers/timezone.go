package providers

import (
	"strings"
	"time"
)

// ResolveTimezone returns the location named by tz, or nil when tz is blank or unknown.
// Schedule dates are evaluated in this zone so a late West Coast game stays on its local day.
func ResolveTimezone(tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	return loc
}

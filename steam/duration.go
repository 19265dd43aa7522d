package steam

import (
	"fmt"
	"math"
	"strings"
)

type Unit string

const (
	Milliseconds Unit = "ms"
	Seconds      Unit = "s"
	Minutes      Unit = "m"
	Hours        Unit = "h"
	Days         Unit = "d"
	Weeks        Unit = "w"
)

var unitAliases = map[string]Unit{
	"ms": Milliseconds, "millisecond": Milliseconds, "milliseconds": Milliseconds,
	"s": Seconds, "second": Seconds, "seconds": Seconds,
	"m": Minutes, "minute": Minutes, "minutes": Minutes,
	"h": Hours, "hour": Hours, "hours": Hours,
	"d": Days, "day": Days, "days": Days,
	"w": Weeks, "week": Weeks, "weeks": Weeks,
}

var unitSeconds = map[Unit]float64{
	Milliseconds: 0.001,
	Seconds:      1,
	Minutes:      60,
	Hours:        60 * 60,
	Days:         24 * 60 * 60,
	Weeks:        7 * 24 * 60 * 60,
}

// ParseUnit resolves short and long unit names. Unknown names are seconds.
func ParseUnit(s string) Unit {
	if u, ok := unitAliases[strings.ToLower(s)]; ok {
		return u
	}
	return Seconds
}

// FormatDuration renders amount of unit as whole days, hours and minutes,
// e.g. "1天2小时3分钟". Zero components and seconds are left out, so
// durations under a minute and negative durations give "".
func FormatDuration(amount float64, unit Unit) string {
	// whole minutes stay in float64 so long durations cannot overflow
	total := math.Floor(amount * unitSeconds[ParseUnit(string(unit))] / 60)
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return ""
	}

	days := math.Floor(total / (24 * 60))
	hours := math.Floor(math.Mod(total, 24*60) / 60)
	minutes := math.Mod(total, 60)

	var sb strings.Builder
	if days > 0 {
		fmt.Fprintf(&sb, "%.0f天", days)
	}
	if hours > 0 {
		fmt.Fprintf(&sb, "%.0f小时", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&sb, "%.0f分钟", minutes)
	}
	return sb.String()
}

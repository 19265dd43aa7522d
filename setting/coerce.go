package setting

import "math"

// Coercer normalizes a number typed by a user.
type Coercer func(n float64) float64

// Coercers are keyed by "group.field". Numbers without an entry are stored as given.
var Coercers = map[string]Coercer{
	"steam.timeout": func(n float64) float64 {
		if n > 0 {
			return n
		}
		return 5
	},
	"push.pushMode": func(n float64) float64 {
		if n >= 1 && n <= 2 {
			return n
		}
		return 1
	},
	"push.time": func(n float64) float64 {
		if n >= 0 {
			return n
		}
		return 5
	},
	"other.renderScale": func(n float64) float64 {
		return math.Min(200, math.Max(50, orDefault(n, 100)))
	},
	"other.hiddenLength": func(n float64) float64 {
		return math.Max(1, orDefault(n, 99))
	},
	"other.itemLength": func(n float64) float64 {
		return math.Max(1, orDefault(n, 3))
	},
}

// orDefault treats zero and NaN as "nothing typed".
func orDefault(n, def float64) float64 {
	if n == 0 || math.IsNaN(n) {
		return def
	}
	return n
}

// Coerce applies the coercer registered for path, if any.
func Coerce(path string, n float64) float64 {
	if c, ok := Coercers[path]; ok {
		return c(n)
	}
	return n
}

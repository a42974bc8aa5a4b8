package render

// QualityNone means the link is not associated or has no measurement
const QualityNone = -1

// Signal-strength thresholds, in dBm, for the discrete quality levels
var qualityThresholds = [4]int{-55, -65, -75, -85}

// QualityLevel maps a signal-strength measurement into a discrete
// quality level 0..4, or QualityNone when the link is down or the
// measurement is unavailable.
func QualityLevel(dbm int, valid, associated bool) int {
	if !associated || !valid {
		return QualityNone
	}
	for i, threshold := range qualityThresholds {
		if dbm >= threshold {
			return 4 - i
		}
	}
	return 0
}

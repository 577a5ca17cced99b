package core

// Percent returns part/whole*100 rounded half-up to 2 decimal places, or 0 when whole is 0.
// Integer arithmetic keeps values like 1/11 at exactly 9.09.
func Percent(part, whole int) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p, w := int64(part), int64(whole)
	hundredths := (p*10000*2 + w) / (2 * w)
	return float64(hundredths) / 100
}

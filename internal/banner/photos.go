package banner

import "math"

// Photo gating is a placeholder business rule: larger bookings or larger
// properties need photo proof before completion. The real policy is not yet
// defined by the product; do not extend this heuristic.

// PhotosRequired reports whether a session needs completion photos.
func PhotosRequired(guestCount, roomCount int) bool {
	return guestCount >= 3 || roomCount >= 3
}

// RequiredPhotoCount returns how many photos the session needs, between 2 and
// 4, scaling with guests (capped at 6) and rooms.
func RequiredPhotoCount(guestCount, roomCount int) int {
	if guestCount < 0 {
		guestCount = 0
	}
	if roomCount < 0 {
		roomCount = 0
	}
	raw := 2 + 0.5*math.Min(float64(guestCount), 6) + math.Min(float64(roomCount)/2, 2)
	return int(math.Ceil(clamp(raw, 2, 4)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

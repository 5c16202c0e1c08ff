package banner

// statusRank orders statuses for display when several banners are candidates.
var statusRank = map[Status]int{
	StatusAwaitingPhotos: 4,
	StatusActive:         3,
	StatusReady:          2,
	StatusBreak:          2,
	StatusScheduled:      1,
	StatusDayWrap:        0,
	StatusRelax:          0,
}

// StatusPriority maps a banner status to its integer display rank. Unknown
// statuses rank lowest.
func StatusPriority(s Status) int {
	return statusRank[s]
}

// saneTransitions encodes which banner transitions are considered sane.
// Evaluation never consults this; it exists for tests and assertions, since
// every banner is recomputed from scratch rather than stepped incrementally.
var saneTransitions = map[Status][]Status{
	StatusRelax:          {StatusScheduled, StatusReady, StatusActive, StatusDayWrap},
	StatusScheduled:      {StatusReady, StatusActive, StatusRelax},
	StatusReady:          {StatusActive, StatusBreak, StatusAwaitingPhotos},
	StatusActive:         {StatusBreak, StatusAwaitingPhotos, StatusRelax, StatusDayWrap},
	StatusBreak:          {StatusActive, StatusAwaitingPhotos},
	StatusAwaitingPhotos: {StatusRelax, StatusDayWrap},
	StatusDayWrap:        {StatusRelax},
}

// ValidateTransition reports whether moving from one banner status to another
// is considered sane.
func ValidateTransition(from, to Status) bool {
	for _, s := range saneTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

package reservation

// Merge concatenates reservation lists keeping the first occurrence of each
// identity and dropping later duplicates, preserving first-seen order. Every
// place that combines reservations from more than one source (a month-scoped
// fetch plus a full-collection fallback, say) must go through it, so a given
// reservation can never be rendered twice on the same day.
func Merge(lists ...[]*Reservation) []*Reservation {
	seen := make(map[ReservationID]struct{})
	var out []*Reservation
	for _, list := range lists {
		for _, r := range list {
			if r == nil {
				continue
			}
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

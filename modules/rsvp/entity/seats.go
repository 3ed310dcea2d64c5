package entity

// SeatsTaken is the canonical in-memory seat accounting: the sum of
// (1 + guests_count) over RSVPs with status "going". The repository's
// aggregate query (COALESCE(SUM(1 + guests_count), 0) filtered on
// status = 'going') must return the same value for the same rows.
func SeatsTaken(rsvps []Rsvp) int {
	total := 0
	for i := range rsvps {
		total += rsvps[i].Seats()
	}
	return total
}

// IsFull reports whether an event has reached capacity. Events without a
// capacity are never full. Fullness is advisory: nothing blocks a toggle on
// a full event.
func IsFull(capacity *int, seatsTaken int) bool {
	return capacity != nil && seatsTaken >= *capacity
}

package domain

// Transition validates a status change and the actor's authority to trigger
// it. Cancelled is terminal; a cancelled reservation cannot be revived.
//
//	pending   -> confirmed   admin only
//	pending   -> cancelled   admin or owner
//	confirmed -> cancelled   admin or owner
//
// Everything else fails with ErrInvalidTransition; a disallowed request is
// never silently ignored.
func Transition(actor Actor, res Reservation, to Status) error {
	switch {
	case res.Status == StatusPending && to == StatusConfirmed:
		if !actor.IsAdmin() {
			return ErrForbidden
		}
		return nil
	case res.Status == StatusPending && to == StatusCancelled,
		res.Status == StatusConfirmed && to == StatusCancelled:
		if !actor.IsAdmin() && actor.ID != res.OwnerID {
			return ErrForbidden
		}
		return nil
	}
	return ErrInvalidTransition
}

// CanEdit reports whether content fields (title, description, dates, space)
// may still change. Edits are allowed from pending or confirmed only.
func CanEdit(res Reservation) error {
	if res.Status == StatusCancelled {
		return ErrReservationCancelled
	}
	return nil
}

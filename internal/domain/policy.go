package domain

// AccessPolicy is the single place role and ownership checks live. Handlers
// and services never compare roles ad hoc.
type AccessPolicy struct{}

// CanRead allows admins and the owning user.
func (AccessPolicy) CanRead(actor Actor, res Reservation) error {
	if actor.IsAdmin() || actor.ID == res.OwnerID {
		return nil
	}
	return ErrForbidden
}

// CanWrite follows the same rule as CanRead for content fields.
func (AccessPolicy) CanWrite(actor Actor, res Reservation) error {
	if actor.IsAdmin() || actor.ID == res.OwnerID {
		return nil
	}
	return ErrForbidden
}

// CanChangeStatus gates the generic status-change operation. Admin only; this
// is checked before any lifecycle rule, so an owner asking to revert their own
// confirmed reservation still gets ErrForbidden.
func (AccessPolicy) CanChangeStatus(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// CanManageSpaces covers space and amenity curation.
func (AccessPolicy) CanManageSpaces(actor Actor) error {
	if actor.Role == RoleAdmin || actor.Role == RoleManager {
		return nil
	}
	return ErrForbidden
}

// CanManageUsers covers user administration.
func (AccessPolicy) CanManageUsers(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return ErrForbidden
}

// CanSeeInactiveSpaces: spaces are curated by admins and managers; to anyone
// else an inactive space is indistinguishable from an absent one.
func (AccessPolicy) CanSeeInactiveSpaces(actor Actor) bool {
	return actor.Role == RoleAdmin || actor.Role == RoleManager
}

// CanDeleteSpace permits deletion only when nothing blocking still ends in the
// future; activeCount is the persistence collaborator's count of such rows.
func (AccessPolicy) CanDeleteSpace(activeCount int) error {
	if activeCount > 0 {
		return ErrSpaceInUse
	}
	return nil
}

// CheckSelfProtection forbids an admin from demoting or deleting their own
// account.
func (AccessPolicy) CheckSelfProtection(actor Actor, targetID int64) error {
	if actor.IsAdmin() && actor.ID == targetID {
		return ErrSelfProtection
	}
	return nil
}

package domain

import "time"

// User is the stored identity reservations reference. Credentials and token
// issuance live in the external identity service.
type User struct {
	ID        int64
	Name      string
	Login     string
	Role      Role
	CreatedAt time.Time
}

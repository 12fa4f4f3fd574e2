package domain

// Amenity is reference data attached to spaces; it carries no scheduling
// semantics.
type Amenity struct {
	ID          int64
	Name        string
	Description string
}

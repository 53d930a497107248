package models

// Status is the soft-delete state shared by users, products, categories and media.
// Rows are never removed; deactivating one flips it to StatusInactive.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func StatusFromActive(active bool) Status {
	if active {
		return StatusActive
	}
	return StatusInactive
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

package usecase

// Actor identifies who performs an operation and with which role.
type Actor struct {
	ID    int64
	Admin bool
}

// CanAccess reports whether the actor may read data owned by ownerID.
func (a Actor) CanAccess(ownerID int64) bool {
	return a.Admin || a.ID == ownerID
}

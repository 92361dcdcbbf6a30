package services

type Ownership int

const (
	OwnershipAbsent Ownership = iota
	OwnershipOwned
	OwnershipNotOwned
)

func CheckOwnership(found bool, ownerID, requesterID int64) Ownership {
	switch {
	case !found:
		return OwnershipAbsent
	case ownerID == requesterID:
		return OwnershipOwned
	default:
		return OwnershipNotOwned
	}
}

// HideForeign reports someone else's resource exactly like a missing one, so
// callers cannot probe which ids exist. It returns nil only when owned.
func HideForeign(o Ownership, notFound error) error {
	if o == OwnershipOwned {
		return nil
	}
	return notFound
}

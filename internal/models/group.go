package models

// Group represents a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group.
	ID string

	// OwnerID is the member who created the group.
	// The owner is always part of Members.
	OwnerID string

	// Name is the display name of the group (e.g., "Apartment 20").
	Name string

	// MemberIDs lists the members of the group in the order they joined.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether memberID belongs to the group.
func (g *Group) HasMember(memberID string) bool {
	for _, id := range g.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	c := *g
	c.MemberIDs = append([]string(nil), g.MemberIDs...)
	return &c
}

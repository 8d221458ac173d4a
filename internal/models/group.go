package models

// Group represents a named set of users who share expenses.
//
// Membership is a set: adding a present member or removing an absent one is
// a no-op. Expenses reference their group by ID only; deleting a group leaves
// those references dangling rather than cascading.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Trip", "Roommates").
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// MemberIDs is the set of user IDs belonging to the group.
	MemberIDs []string `json:"memberIds"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

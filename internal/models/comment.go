package models

// Comment belongs to a moment by MomentID. The reference is not enforced by
// the schema, so it may point at a seed moment or a deleted one.
type Comment struct {
	ID        int64
	MomentID  int64
	Author    string
	Content   string
	Timestamp int64
}

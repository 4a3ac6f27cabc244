package models

// Moment is a user-authored post. Date is epoch milliseconds.
//
// Ids <= 0 are reserved for seed content merged at read time; such moments
// never reach the store.
type Moment struct {
	ID          int64
	ImageURI    string
	Description string
	Date        int64
	Location    string
}

// IsSeed reports whether m is fixed sample content rather than a stored row.
func (m Moment) IsSeed() bool {
	return IsSeedID(m.ID)
}

// IsSeedID reports whether id falls in the reserved seed range.
func IsSeedID(id int64) bool {
	return id <= 0
}

package person

import "time"

// Person represents an individual on record with the wallet service.
type Person struct {
	ID        string
	Title     string
	FirstName string
	LastName  string
	DOB       string
	CreatedAt time.Time
}

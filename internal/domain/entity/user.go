package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
//
// Password holds the cipher-text produced by the credential cipher at
// sign-up; it is decrypted only on read paths that must echo it back.
// Email is the unique business key.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Phones    []Phone
	Created   time.Time
	LastLogin time.Time
	Token     string
	IsActive  bool
}

// Phone is a contact number owned by a User.
type Phone struct {
	Number      int64
	CityCode    int
	CountryCode string
}

// Package models contains the server-side persistence entities.
package models

import "time"

// User is the single credential record. The passcode salt/hash pair is
// absent until the owner configures a passcode for the first time.
type User struct {
	ID           string
	PasscodeSalt []byte
	PasscodeHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPasscode reports whether a passcode has ever been configured.
func (u *User) HasPasscode() bool {
	return len(u.PasscodeHash) > 0
}

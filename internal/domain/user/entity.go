package user

import "time"

// User is the platform account as this service sees it. Accounts are minted
// by the identity service; rows here carry the Star Citizen identity attached
// to them (RSI handle, verification state) and exist so org records have a
// stable foreign key.
type User struct {
	ID             string
	Handle         string
	DisplayName    string
	AvatarURL      *string
	Bio            *string
	HandleVerified bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

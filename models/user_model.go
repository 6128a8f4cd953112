package models

type User struct {
	ID           string `json:"id,omitempty" bson:"_id,omitempty"`
	PublicID     string `json:"public_id" bson:"public_id"`
	Username     string `json:"username" bson:"username"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"password_hash" bson:"password_hash"`
}

// Profile is the part of a User that is safe to hand to the rendering client.
type Profile struct {
	PublicID string `json:"public_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Profile() Profile {
	return Profile{PublicID: u.PublicID, Username: u.Username, Email: u.Email}
}

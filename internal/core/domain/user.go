package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Name is a person's name split into its parts.
type Name struct {
	First  string `json:"first" bson:"first"`
	Middle string `json:"middle,omitempty" bson:"middle,omitempty"`
	Last   string `json:"last,omitempty" bson:"last,omitempty"`
}

// User models an account. The password hash is stored alongside the user
// document but never decoded into this type; see Credentials.
type User struct {
	ID                       string    `json:"id"`
	Name                     Name      `json:"name"`
	PhotoPath                string    `json:"photo_path"`
	Age                      int       `json:"age"`
	Email                    string    `json:"email"`
	Role                     string    `json:"role"`
	NumberOfSongsSubmitted   int       `json:"number_of_songs_submitted"`
	NumberOfPlaylistsCreated int       `json:"number_of_playlists_created"`
	FavoritePlaylists        []string  `json:"favorite_playlists"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// Credentials is the stored credential of a user.
type Credentials struct {
	UserID       string
	PasswordHash string
}

// UserPatch carries a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name              *Name
	PhotoPath         *string
	Age               *int
	Email             *string
	Role              *string
	FavoritePlaylists []string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.PhotoPath == nil && p.Age == nil &&
		p.Email == nil && p.Role == nil && p.FavoritePlaylists == nil
}

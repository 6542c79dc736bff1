package models

import (
	"encoding/json"
	"fmt"
)

// User is one entry of the user directory.
type User struct {
	ID   int    `json:"user_id"`
	Name string `json:"name"`
}

// UnmarshalJSON falls back to "User <id>" when the directory has no name,
// matching how the backend labels users missing from its user file.
func (u *User) UnmarshalJSON(data []byte) error {
	type rawUser User
	var tmp rawUser
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.Name == "" {
		tmp.Name = fmt.Sprintf("User %d", tmp.ID)
	}
	*u = User(tmp)
	return nil
}

package models

import (
	"encoding/json"
	"testing"
)

func TestUserDirectoryParsing(t *testing.T) {
	testJSON := `[
        {"user_id": 10, "name": "Maciej Z."},
        {"user_id": 11}
    ]`

	var users []User
	err := json.Unmarshal([]byte(testJSON), &users)
	if err != nil {
		t.Fatalf("Failed to parse users JSON: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}

	if users[0].ID != 10 || users[0].Name != "Maciej Z." {
		t.Errorf("Unexpected first user %+v", users[0])
	}

	// Users without a name fall back to their id
	if users[1].Name != "User 11" {
		t.Errorf("Expected fallback name User 11, got %s", users[1].Name)
	}
}

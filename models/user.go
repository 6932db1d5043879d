package models

import "encoding/json"

// User is the signed-in account as reported by the remote API. The web tier only
// caches it; IsAdmin is a UI hint and never an authorization decision.
type User struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Number  string `json:"number,omitempty" bson:"number,omitempty"`
	IsAdmin bool   `json:"isAdmin" bson:"isAdmin"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         FlexString `json:"id"`
		UnderID    FlexString `json:"_id"`
		UserID     FlexString `json:"userId"`
		Name       string     `json:"name"`
		Email      string     `json:"email"`
		Number     FlexString `json:"number"`
		IsAdmin    bool       `json:"isAdmin"`
		IsAdminAlt bool       `json:"is_admin"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User{
		ID:      firstNonEmpty(raw.UnderID.String(), raw.ID.String(), raw.UserID.String()),
		Name:    raw.Name,
		Email:   raw.Email,
		Number:  raw.Number.String(),
		IsAdmin: raw.IsAdmin || raw.IsAdminAlt,
	}
	return nil
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Number          string `json:"number"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package model

import (
	"context"
	"encoding/json"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, id int64, update UserUpdate) (User, error)
}

// User represents a row of the users table.
//
// Raw, when set, is the row exactly as the store returned it and is what
// the user encodes to. Stores that return JSON rows fill it so columns the
// service does not know about reach the client untouched.
type User struct {
	ID           int64           `json:"id_user"`
	Email        string          `json:"email"`
	NomeCompleto string          `json:"nome_completo"`
	PhoneNumber  string          `json:"phone_number"`
	IDEscola     int64           `json:"id_escola"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	Raw          json.RawMessage `json:"-"`
}

func (u User) MarshalJSON() ([]byte, error) {
	if len(u.Raw) > 0 {
		return u.Raw, nil
	}
	type user User
	return json.Marshal(user(u))
}

// UserUpdate holds the mutable user fields. Nil fields are left unchanged.
type UserUpdate struct {
	NomeCompleto *string `json:"nome_completo,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	IDEscola     *int64  `json:"id_escola,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.NomeCompleto == nil && u.PhoneNumber == nil && u.IDEscola == nil
}

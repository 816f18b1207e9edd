package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dtroode/escolas-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const usersTable = "users"

var errNoFields = errors.New("no fields to update")

// userRow is the insert payload; id_user and created_at are assigned by the store.
type userRow struct {
	Email        string `json:"email"`
	NomeCompleto string `json:"nome_completo"`
	PhoneNumber  string `json:"phone_number"`
	IDEscola     int64  `json:"id_escola"`
}

// userFields are the columns the service reads from a returned row.
// created_at is left to the raw row so its encoding is passed through as stored.
type userFields struct {
	ID           int64  `json:"id_user"`
	Email        string `json:"email"`
	NomeCompleto string `json:"nome_completo"`
	PhoneNumber  string `json:"phone_number"`
	IDEscola     int64  `json:"id_escola"`
}

func decodeUser(raw json.RawMessage) (model.User, error) {
	var f userFields
	if err := json.Unmarshal(raw, &f); err != nil {
		return model.User{}, fmt.Errorf("failed to decode user row: %w", err)
	}

	return model.User{
		ID:           f.ID,
		Email:        f.Email,
		NomeCompleto: f.NomeCompleto,
		PhoneNumber:  f.PhoneNumber,
		IDEscola:     f.IDEscola,
		Raw:          raw,
	}, nil
}

type UserRepository struct {
	client *Client
}

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{
		client: client,
	}
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	row := userRow{
		Email:        user.Email,
		NomeCompleto: user.NomeCompleto,
		PhoneNumber:  user.PhoneNumber,
		IDEscola:     user.IDEscola,
	}

	var saved json.RawMessage
	_, err := r.client.from(usersTable).
		Insert(row, false, "", "representation", "").
		Single().
		ExecuteTo(&saved)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return decodeUser(saved)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	var users []json.RawMessage
	_, err := r.client.from(usersTable).
		Select("*", "", false).
		Eq("email", email).
		ExecuteTo(&users)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if len(users) == 0 {
		return model.User{}, model.ErrNotFound
	}

	return decodeUser(users[0])
}

func (r *UserRepository) Update(_ context.Context, id int64, update model.UserUpdate) (model.User, error) {
	if update.IsEmpty() {
		return model.User{}, errNoFields
	}

	var updated json.RawMessage
	_, err := r.client.from(usersTable).
		Update(update, "representation", "").
		Eq("id_user", strconv.FormatInt(id, 10)).
		Single().
		ExecuteTo(&updated)
	if err := mapError(err); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return decodeUser(updated)
}

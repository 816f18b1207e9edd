package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/escolas-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id_user, email, nome_completo, phone_number, id_escola, created_at`

type UserRepository struct {
	db querier
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (email, nome_completo, phone_number, id_escola)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.Email, user.NomeCompleto, user.PhoneNumber, user.IDEscola,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + `
			  FROM users WHERE email = $1 LIMIT 1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, update model.UserUpdate) (model.User, error) {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.NomeCompleto != nil {
		set("nome_completo", *update.NomeCompleto)
	}
	if update.PhoneNumber != nil {
		set("phone_number", *update.PhoneNumber)
	}
	if update.IDEscola != nil {
		set("id_escola", *update.IDEscola)
	}
	if len(sets) == 0 {
		return model.User{}, fmt.Errorf("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id_user = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.NomeCompleto, &user.PhoneNumber, &user.IDEscola, &user.CreatedAt,
	)
	return user, err
}

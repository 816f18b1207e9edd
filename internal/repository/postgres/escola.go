package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/escolas-server/internal/model"
)

var _ model.EscolaStore = (*EscolaRepository)(nil)

type EscolaRepository struct {
	db querier
}

func NewEscolaRepository(db *Connection) *EscolaRepository {
	return &EscolaRepository{
		db: db,
	}
}

func (r *EscolaRepository) List(ctx context.Context) ([]model.Escola, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nome FROM escolas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list escolas: %w", err)
	}
	defer rows.Close()

	escolas := []model.Escola{}
	for rows.Next() {
		var e model.Escola
		if err := rows.Scan(&e.ID, &e.Nome); err != nil {
			return nil, fmt.Errorf("failed to scan escola: %w", err)
		}
		escolas = append(escolas, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate escolas: %w", err)
	}

	return escolas, nil
}

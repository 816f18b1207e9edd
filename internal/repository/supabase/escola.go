package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dtroode/escolas-server/internal/model"
)

var _ model.EscolaStore = (*EscolaRepository)(nil)

type EscolaRepository struct {
	client *Client
}

func NewEscolaRepository(client *Client) *EscolaRepository {
	return &EscolaRepository{
		client: client,
	}
}

// List returns every escola row. Each row keeps all of its columns.
func (r *EscolaRepository) List(_ context.Context) ([]model.Escola, error) {
	var rows []json.RawMessage
	_, err := r.client.from("escolas").
		Select("*", "", false).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list escolas: %w", err)
	}

	escolas := make([]model.Escola, 0, len(rows))
	for _, raw := range rows {
		var e model.Escola
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("failed to decode escola row: %w", err)
		}
		e.Raw = raw
		escolas = append(escolas, e)
	}

	return escolas, nil
}

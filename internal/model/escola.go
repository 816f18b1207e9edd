package model

import (
	"context"
	"encoding/json"
)

// EscolaStore defines read operations for schools.
type EscolaStore interface {
	List(ctx context.Context) ([]Escola, error)
}

// Escola represents a row of the escolas table. Only id and nome are read;
// Raw carries the full row when the store provides one.
type Escola struct {
	ID   int64           `json:"id"`
	Nome string          `json:"nome"`
	Raw  json.RawMessage `json:"-"`
}

func (e Escola) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	type escola Escola
	return json.Marshal(escola(e))
}

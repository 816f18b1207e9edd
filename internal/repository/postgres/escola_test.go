package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/escolas-server/internal/model"
)

func TestEscolaRepository_List(t *testing.T) {
	tests := []struct {
		name     string
		q        *fakeQuerier
		want     []model.Escola
		wantErr  string
		checkRow bool
	}{
		{
			name: "rows",
			q: &fakeQuerier{rows: &fakeRows{rows: []fakeRow{
				{values: []any{int64(1), "Escola A"}},
				{values: []any{int64(2), "Escola B"}},
			}}},
			want:     []model.Escola{{ID: 1, Nome: "Escola A"}, {ID: 2, Nome: "Escola B"}},
			checkRow: true,
		},
		{
			name:     "empty table yields empty slice",
			q:        &fakeQuerier{rows: &fakeRows{}},
			want:     []model.Escola{},
			checkRow: true,
		},
		{
			name:    "query error",
			q:       &fakeQuerier{queryErr: errors.New("boom")},
			wantErr: "failed to list escolas",
		},
		{
			name:    "scan error",
			q:       &fakeQuerier{rows: &fakeRows{rows: []fakeRow{{err: errors.New("bad value")}}}},
			wantErr: "failed to scan escola",
		},
		{
			name:    "iteration error",
			q:       &fakeQuerier{rows: &fakeRows{err: errors.New("conn lost")}},
			wantErr: "failed to iterate escolas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &EscolaRepository{db: tt.q}

			got, err := repo.List(context.Background())
			assert.Contains(t, tt.q.sql, "FROM escolas")
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.checkRow {
				assert.True(t, tt.q.rows.closed)
			}
		})
	}
}

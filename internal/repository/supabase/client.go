// Package supabase implements the stores on top of the Supabase REST API.
package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/postgrest-go"

	"github.com/dtroode/escolas-server/internal/model"
)

// codeNoRows is the PostgREST error code for a single-object request that
// matched zero rows.
const codeNoRows = "PGRST116"

// Client is a PostgREST client bound to a Supabase project.
type Client struct {
	rest *postgrest.Client
}

// NewClient creates a client for the project at baseURL authenticated with key.
// The key is sent both as apikey and as a bearer token.
func NewClient(baseURL, key string) (*Client, error) {
	headers := map[string]string{
		"apikey": key,
	}
	if key != "" {
		headers["Authorization"] = "Bearer " + key
	}

	rest := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", "public", headers)
	if rest.ClientError != nil {
		return nil, fmt.Errorf("failed to create postgrest client: %w", rest.ClientError)
	}

	return &Client{rest: rest}, nil
}

func (c *Client) from(table string) *postgrest.QueryBuilder {
	return c.rest.From(table)
}

// mapError converts PostgREST "no rows" responses to model.ErrNotFound.
func mapError(err error) error {
	if err != nil && strings.Contains(err.Error(), codeNoRows) {
		return model.ErrNotFound
	}
	return err
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dtroode/escolas-server/internal/logger"
	"github.com/dtroode/escolas-server/internal/mocks"
	"github.com/dtroode/escolas-server/internal/model"
	"github.com/dtroode/escolas-server/internal/testutil"
)

func TestUsers_Routes(t *testing.T) {
	h := NewUsers(mocks.NewUserStore(t), testutil.MakeNoopLogger())

	assert.Equal(t, "users", h.Name())
	routes := h.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "create", routes[0].Name)
	assert.Equal(t, http.MethodPost, routes[0].Method)
	assert.Equal(t, "exists", routes[1].Name)
	assert.Equal(t, http.MethodGet, routes[1].Method)
	assert.Equal(t, "update", routes[2].Name)
	assert.Equal(t, http.MethodPut, routes[2].Method)
}

func TestUsers_Create(t *testing.T) {
	valid := map[string]any{
		"email":         "a@b.com",
		"nome_completo": "A B",
		"phone_number":  "123",
		"id_escola":     1,
	}

	t.Run("echoes stored row", func(t *testing.T) {
		store := mocks.NewUserStore(t)
		stored := model.User{ID: 7, Email: "a@b.com", NomeCompleto: "A B", PhoneNumber: "123", IDEscola: 1}
		store.On("Create", mock.Anything, model.User{
			Email: "a@b.com", NomeCompleto: "A B", PhoneNumber: "123", IDEscola: 1,
		}).Return(stored, nil)

		h := NewUsers(store, testutil.MakeNoopLogger())
		w, err := call(h.Create, jsonRequest(t, http.MethodPost, "/users/create", valid))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		var got model.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, stored, got)
	})

	for _, field := range []string{"email", "nome_completo", "phone_number", "id_escola"} {
		t.Run("missing "+field, func(t *testing.T) {
			body := map[string]any{}
			for k, v := range valid {
				if k != field {
					body[k] = v
				}
			}

			h := NewUsers(mocks.NewUserStore(t), testutil.MakeNoopLogger())
			_, err := call(h.Create, jsonRequest(t, http.MethodPost, "/users/create", body))
			requireError(t, err, http.StatusBadRequest, "Missing required fields")
		})
	}

	t.Run("empty string counts as missing", func(t *testing.T) {
		body := map[string]any{"email": "", "nome_completo": "A B", "phone_number": "123", "id_escola": 1}

		h := NewUsers(mocks.NewUserStore(t), testutil.MakeNoopLogger())
		_, err := call(h.Create, jsonRequest(t, http.MethodPost, "/users/create", body))
		requireError(t, err, http.StatusBadRequest, "Missing required fields")
	})

	t.Run("empty body", func(t *testing.T) {
		h := NewUsers(mocks.NewUserStore(t), testutil.MakeNoopLogger())
		_, err := call(h.Create, jsonRequest(t, http.MethodPost, "/users/create", nil))
		requireError(t, err, http.StatusBadRequest, "Missing required fields")
	})

	t.Run("malformed json", func(t *testing.T) {
		h := NewUsers(mocks.NewUserStore(t), testutil.MakeNoopLogger())
		_, err := call(h.Create, jsonRequest(t, http.MethodPost, "/users/create", `{"email":`))
		requireError(t, err, http.StatusBadRequest, "Invalid request body")
	})

	t.Run("form body", func(t *testing.T) {
		store := mocks.NewUserStore(t)
		store.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			return u.Email == "a@b.com" && u.IDEscola == 2
		})).Return(model.User{ID: 1, Email: "a@b.com"}, nil)

		form := url.Values{
			"email":         {"a@b.com"},
			"nome_completo": {"A B"},
			"phone_number":  {"123"},
			"id_escola":     {"2"},
		}
		req := httptest.NewRequest(http.MethodPost, "/users/create", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		h := NewUsers(store, testutil.MakeNoopLogger())
		w, err := call(h.Create, req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("store error", func(t *testing.T) {
		store := mocks.NewUserStore(t)
		store.On("Create", mock.Anything, mock.Anything).
			Return(model.User{}, errors.New(`duplicate key value violates unique constraint "users_email_key"`))

		h := NewUsers(store, testutil.MakeNoopLogger())
		_, err := call(h.Create, jsonRequest(t, http.MethodPost, "/users/create", valid))
		requireError(t, err, http.StatusInternalServerError, "Error creating user")
	})
}

func TestUsers_Exists(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store := mocks.NewUserStore(t)
		user := model.User{ID: 3, Email: "x@y.com", NomeCompleto: "X Y"}
		store.On("GetByEmail", mock.Anything, "x@y.com").Return(user, nil)

		h := NewUsers(store, testutil.MakeNoopLogger())
		w, err := call(h.Exists, httptest.NewRequest(http.MethodGet, "/users/exists?email=x@y.com", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, w.Code)

		var got model.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, user, got)
	})

	t.Run("not found", func(t *testing.T) {
		store := mocks.NewUserStore(t)
		store.On("GetByEmail", mock.Anything, "x@y.com").Return(model.User{}, model.ErrNotFound)

		h := NewUsers(store, testutil.MakeNoopLogger())
		_, err := call(h.Exists, httptest.NewRequest(http.MethodGet, "/users/exists?email=x@y.com", nil))
		requireError(t, err, http.StatusNotFound, "User not found")
	})

	t.Run("missing email", func(t *testing.T) {
		h := NewUsers(mocks.NewUserStore(t), testutil.MakeNoopLogger())
		_, err := call(h.Exists, httptest.NewRequest(http.MethodGet, "/users/exists", nil))
		requireError(t, err, http.StatusBadRequest, "Missing email")
	})

	t.Run("store error", func(t *testing.T) {
		store := mocks.NewUserStore(t)
		store.On("GetByEmail", mock.Anything, "x@y.com").Return(model.User{}, errors.New("timeout"))

		h := NewUsers(store, testutil.MakeNoopLogger())
		_, err := call(h.Exists, httptest.NewRequest(http.MethodGet, "/users/exists?email=x@y.com", nil))
		requireError(t, err, http.StatusInternalServerError, "Error checking user exists")
	})
}

func TestUsers_Update(t *testing.T) {
	name := "New Name"
	escola := int64(4)

	tests := []struct {
		name    string
		body    any
		update  *model.UserUpdate
		result  model.User
		err     error
		status  int
		message string
	}{
		{
			name:    "missing id",
			body:    map[string]any{"nome_completo": "New Name", "phone_number": "1"},
			status:  http.StatusBadRequest,
			message: "Missing user ID",
		},
		{
			name:    "empty body",
			body:    nil,
			status:  http.StatusBadRequest,
			message: "Missing user ID",
		},
		{
			name:    "no fields",
			body:    map[string]any{"id_user": 1},
			status:  http.StatusBadRequest,
			message: "No fields to update",
		},
		{
			name:    "malformed json",
			body:    `{"id_user":"one"}`,
			status:  http.StatusBadRequest,
			message: "Invalid request body",
		},
		{
			name:   "partial update",
			body:   map[string]any{"id_user": 1, "nome_completo": "New Name", "id_escola": 4},
			update: &model.UserUpdate{NomeCompleto: &name, IDEscola: &escola},
			result: model.User{ID: 1, NomeCompleto: "New Name", IDEscola: 4},
			status: http.StatusOK,
		},
		{
			name:    "unknown user",
			body:    map[string]any{"id_user": 9, "nome_completo": "New Name"},
			update:  &model.UserUpdate{NomeCompleto: &name},
			err:     model.ErrNotFound,
			status:  http.StatusNotFound,
			message: "User not found",
		},
		{
			name:    "store error",
			body:    map[string]any{"id_user": 1, "nome_completo": "New Name"},
			update:  &model.UserUpdate{NomeCompleto: &name},
			err:     errors.New("violates foreign key constraint"),
			status:  http.StatusInternalServerError,
			message: "Error updating user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewUserStore(t)
			if tt.update != nil {
				store.On("Update", mock.Anything, mock.AnythingOfType("int64"), *tt.update).Return(tt.result, tt.err)
			}

			h := NewUsers(store, testutil.MakeNoopLogger())
			w, err := call(h.Update, jsonRequest(t, http.MethodPut, "/users/update", tt.body))

			if tt.message != "" {
				requireError(t, err, tt.status, tt.message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, w.Code)

			var got model.User
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.result, got)
		})
	}
}

func TestUsers_Exists_EmailNotLoggedAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	store := mocks.NewUserStore(t)
	store.On("GetByEmail", mock.Anything, "x@y.com").Return(model.User{ID: 3, Email: "x@y.com"}, nil)

	h := NewUsers(store, logger.FromZap(zap.New(core)))
	_, err := call(h.Exists, httptest.NewRequest(http.MethodGet, "/users/exists?email=x@y.com", nil))
	require.NoError(t, err)

	require.NotEmpty(t, logs.All())
	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, "x@y.com")
		for _, v := range entry.ContextMap() {
			assert.NotEqual(t, "x@y.com", v)
		}
	}
}

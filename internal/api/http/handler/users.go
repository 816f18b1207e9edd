package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/escolas-server/internal/logger"
	"github.com/dtroode/escolas-server/internal/model"
)

type createUserRequest struct {
	Email        string `json:"email" form:"email" binding:"required"`
	NomeCompleto string `json:"nome_completo" form:"nome_completo" binding:"required"`
	PhoneNumber  string `json:"phone_number" form:"phone_number" binding:"required"`
	IDEscola     int64  `json:"id_escola" form:"id_escola" binding:"required"`
}

// updateUserRequest has no binding rules: an absent id and an empty
// update produce different messages.
type updateUserRequest struct {
	IDUser       int64  `json:"id_user" form:"id_user"`
	NomeCompleto string `json:"nome_completo" form:"nome_completo"`
	PhoneNumber  string `json:"phone_number" form:"phone_number"`
	IDEscola     int64  `json:"id_escola" form:"id_escola"`
}

func (r updateUserRequest) update() model.UserUpdate {
	var u model.UserUpdate
	if r.NomeCompleto != "" {
		u.NomeCompleto = &r.NomeCompleto
	}
	if r.PhoneNumber != "" {
		u.PhoneNumber = &r.PhoneNumber
	}
	if r.IDEscola != 0 {
		u.IDEscola = &r.IDEscola
	}
	return u
}

// Users serves the users controller.
type Users struct {
	store  model.UserStore
	logger *logger.Logger
}

func NewUsers(store model.UserStore, logger *logger.Logger) *Users {
	return &Users{
		store:  store,
		logger: logger.With("controller", "users"),
	}
}

func (h *Users) Name() string {
	return "users"
}

func (h *Users) Routes() []Route {
	return []Route{
		{Name: "create", Method: http.MethodPost, Handler: h.Create},
		{Name: "exists", Method: http.MethodGet, Handler: h.Exists},
		{Name: "update", Method: http.MethodPut, Handler: h.Update},
	}
}

// Create inserts a user and responds with the stored row.
func (h *Users) Create(c *gin.Context) error {
	log := h.logger.With("endpoint", "create")
	log.Info("Creating user")

	var req createUserRequest
	if err := bind(c, &req); err != nil {
		if missingFields(err) {
			log.Error("Missing required fields", "error", err)
			return badRequest("Missing required fields")
		}
		return bodyError(err)
	}

	user, err := h.store.Create(c.Request.Context(), model.User{
		Email:        req.Email,
		NomeCompleto: req.NomeCompleto,
		PhoneNumber:  req.PhoneNumber,
		IDEscola:     req.IDEscola,
	})
	if err != nil {
		return internal("Error creating user", err)
	}

	log.Info("User created", "id_user", user.ID)
	c.JSON(http.StatusOK, user)
	return nil
}

// Exists looks a user up by the email query parameter.
func (h *Users) Exists(c *gin.Context) error {
	log := h.logger.With("endpoint", "exists")

	email := c.Query("email")
	log.Info("Checking user exists")
	log.Debug("Looking up user by email", "email", email)
	if email == "" {
		log.Error("Missing email")
		return badRequest("Missing email")
	}

	user, err := h.store.GetByEmail(c.Request.Context(), email)
	if errors.Is(err, model.ErrNotFound) {
		log.Info("User not found")
		return notFound("User not found")
	}
	if err != nil {
		return internal("Error checking user exists", err)
	}

	log.Info("User found", "id_user", user.ID)
	c.JSON(http.StatusOK, user)
	return nil
}

// Update changes the supplied fields of the user identified by id_user.
func (h *Users) Update(c *gin.Context) error {
	log := h.logger.With("endpoint", "update")
	log.Info("Updating user")

	var req updateUserRequest
	if err := bind(c, &req); err != nil && !missingFields(err) {
		return bodyError(err)
	}

	if req.IDUser == 0 {
		log.Error("Missing user ID")
		return badRequest("Missing user ID")
	}

	update := req.update()
	if update.IsEmpty() {
		log.Error("No fields to update", "id_user", req.IDUser)
		return badRequest("No fields to update")
	}

	user, err := h.store.Update(c.Request.Context(), req.IDUser, update)
	if errors.Is(err, model.ErrNotFound) {
		return notFound("User not found")
	}
	if err != nil {
		return internal("Error updating user", err)
	}

	log.Info("User updated", "id_user", user.ID)
	c.JSON(http.StatusOK, user)
	return nil
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/escolas-server/internal/logger"
	"github.com/dtroode/escolas-server/internal/model"
)

// Escolas serves the read-only escolas controller.
type Escolas struct {
	store  model.EscolaStore
	logger *logger.Logger
}

func NewEscolas(store model.EscolaStore, logger *logger.Logger) *Escolas {
	return &Escolas{
		store:  store,
		logger: logger.With("controller", "escolas"),
	}
}

func (h *Escolas) Name() string {
	return "escolas"
}

func (h *Escolas) Routes() []Route {
	return []Route{
		{Name: "list", Method: http.MethodGet, Handler: h.List},
	}
}

func (h *Escolas) List(c *gin.Context) error {
	h.logger.Info("Listing escolas", "endpoint", "list")

	escolas, err := h.store.List(c.Request.Context())
	if err != nil {
		return internal("Error listing escolas", err)
	}

	c.JSON(http.StatusOK, escolas)
	return nil
}

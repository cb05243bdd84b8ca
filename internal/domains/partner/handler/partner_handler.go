package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bghomes-backend/internal/domains/partner/model"
	"bghomes-backend/internal/domains/partner/service"
	"bghomes-backend/internal/shared/response"
)

type PartnerHandler struct {
	service service.Service
}

func NewPartnerHandler(svc service.Service) *PartnerHandler {
	return &PartnerHandler{service: svc}
}

// List handles GET /api/partners?all=
func (h *PartnerHandler) List(c *gin.Context) {
	partners, err := h.service.List(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		log.Error().Err(err).Msg("partner list failed")
		response.InternalServerError(c, "failed to list partners")
		return
	}

	c.JSON(http.StatusOK, partners)
}

// Create handles POST /api/partners (admin)
func (h *PartnerHandler) Create(c *gin.Context) {
	var req model.PartnerRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	partner, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("partner create failed")
		response.InternalServerError(c, "internal server error")
		return
	}

	c.JSON(http.StatusCreated, partner)
}

// Update handles PUT /api/partners/:id (admin)
func (h *PartnerHandler) Update(c *gin.Context) {
	var req model.PartnerRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	partner, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, model.ErrPartnerNotFound) {
			response.NotFound(c, "partner not found")
			return
		}
		log.Error().Err(err).Msg("partner update failed")
		response.InternalServerError(c, "internal server error")
		return
	}

	c.JSON(http.StatusOK, partner)
}

// Delete handles DELETE /api/partners/:id (admin)
func (h *PartnerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, model.ErrPartnerNotFound) {
			response.NotFound(c, "partner not found")
			return
		}
		log.Error().Err(err).Msg("partner delete failed")
		response.InternalServerError(c, "internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}

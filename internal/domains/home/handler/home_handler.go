package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bghomes-backend/internal/domains/home/model"
	"bghomes-backend/internal/domains/home/service"
	"bghomes-backend/internal/shared/response"
)

type HomeHandler struct {
	service service.Service
}

func NewHomeHandler(svc service.Service) *HomeHandler {
	return &HomeHandler{service: svc}
}

// List handles GET /api/homes?all=&page=&limit=&search=&searchMode=&tag=
// Invalid page/limit values silently fall back to defaults; an empty result
// is a 200 with an empty data array.
func (h *HomeHandler) List(c *gin.Context) {
	filter := model.Filter{
		ShowAll:    c.Query("all") == "true",
		Page:       atoiDefault(c.Query("page"), 1),
		Limit:      atoiDefault(c.Query("limit"), 0),
		Search:     c.Query("search"),
		SearchMode: c.Query("searchMode"),
		Tag:        c.Query("tag"),
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("home list failed")
		response.InternalServerError(c, "failed to list homes")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/homes/:slugOrId
func (h *HomeHandler) Get(c *gin.Context) {
	home, err := h.service.GetBySlugOrID(c.Request.Context(), c.Param("slugOrId"))
	if err != nil {
		if errors.Is(err, model.ErrHomeNotFound) {
			response.NotFound(c, "home not found")
			return
		}
		log.Error().Err(err).Msg("home lookup failed")
		response.InternalServerError(c, "failed to get home")
		return
	}

	c.JSON(http.StatusOK, home)
}

// Create handles POST /api/homes (admin)
func (h *HomeHandler) Create(c *gin.Context) {
	var req model.HomeRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	home, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err, "home create failed")
		return
	}

	c.JSON(http.StatusCreated, home)
}

// Update handles PUT /api/homes/:id (admin) — full-record replace.
func (h *HomeHandler) Update(c *gin.Context) {
	var req model.HomeRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	home, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err, "home update failed")
		return
	}

	c.JSON(http.StatusOK, home)
}

// Delete handles DELETE /api/homes/:id (admin) — hard delete.
func (h *HomeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "home delete failed")
		return
	}

	c.Status(http.StatusNoContent)
}

// Import handles POST /api/homes/import (admin) — transactional bulk insert.
func (h *HomeHandler) Import(c *gin.Context) {
	var reqs []model.HomeRequest
	if err := c.BindJSON(&reqs); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			response.BadRequest(c, "record "+strconv.Itoa(i)+": "+err.Error())
			return
		}
	}

	count, err := h.service.Import(c.Request.Context(), reqs)
	if err != nil {
		h.writeError(c, err, "home import failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imported": count})
}

// Tags handles GET /api/tags
func (h *HomeHandler) Tags(c *gin.Context) {
	tags, err := h.service.Tags(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("tag aggregation failed")
		response.InternalServerError(c, "failed to list tags")
		return
	}

	c.JSON(http.StatusOK, tags)
}

// MapMarkers handles GET /api/homes/map
func (h *HomeHandler) MapMarkers(c *gin.Context) {
	markers, err := h.service.MapMarkers(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("map projection failed")
		response.InternalServerError(c, "failed to list map markers")
		return
	}

	c.JSON(http.StatusOK, markers)
}

func (h *HomeHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, model.ErrHomeNotFound):
		response.NotFound(c, "home not found")
	case errors.Is(err, model.ErrInvalidName):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrDuplicateSlug):
		response.Conflict(c, err.Error())
	default:
		log.Error().Err(err).Msg(logMsg)
		response.InternalServerError(c, "internal server error")
	}
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

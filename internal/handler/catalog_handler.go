package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/service"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateService)
	g.GET("", h.ListServices)
	g.GET("/:id", h.GetService)
	g.PATCH("/:id", h.UpdateService)
}

func (h *CatalogHandler) CreateService(c echo.Context) error {
	var req dto.CreateServiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc := &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Category:    req.Category,
		IsActive:    true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.svc.CreateService(c.Request().Context(), svc); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToServiceResponse(svc))
}

func (h *CatalogHandler) GetService(c echo.Context) error {
	id, err := idParam(c, "service")
	if err != nil {
		return err
	}

	svc, err := h.svc.GetService(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}

func (h *CatalogHandler) ListServices(c echo.Context) error {
	activeOnly := false
	if raw := c.QueryParam("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "active must be true or false")
		}
		activeOnly = v
	}

	services, err := h.svc.ListServices(c.Request().Context(), activeOnly)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.ServiceResponse, len(services))
	for i := range services {
		resp[i] = dto.ToServiceResponse(&services[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) UpdateService(c echo.Context) error {
	id, err := idParam(c, "service")
	if err != nil {
		return err
	}

	var req dto.UpdateServiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	svc, err := h.svc.UpdateService(c.Request().Context(), id, service.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToServiceResponse(svc))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/service"
)

type ClientHandler struct {
	svc service.ClientService
}

func NewClientHandler(svc service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func (h *ClientHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateClient)
	g.GET("", h.ListClients)
	g.GET("/:id", h.GetClient)
	g.PATCH("/:id", h.UpdateClient)
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req dto.CreateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client := &models.Client{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: models.ClientStatus(req.Status),
	}
	if err := h.svc.CreateClient(c.Request().Context(), client); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := idParam(c, "client")
	if err != nil {
		return err
	}

	client, err := h.svc.GetClient(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	var status *models.ClientStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := models.ClientStatus(raw)
		status = &s
	}

	clients, err := h.svc.ListClients(c.Request().Context(), status)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		resp[i] = dto.ToClientResponse(&clients[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	id, err := idParam(c, "client")
	if err != nil {
		return err
	}

	var req dto.UpdateClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := service.UpdateClientInput{Name: req.Name, Phone: req.Phone}
	if req.Status != nil {
		s := models.ClientStatus(*req.Status)
		in.Status = &s
	}

	client, err := h.svc.UpdateClient(c.Request().Context(), id, in)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

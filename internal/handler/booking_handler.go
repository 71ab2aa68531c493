package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
	"github.com/shutterdesk/studio/internal/service"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	svc service.BookingService
	loc *time.Location
	now func() time.Time
}

func NewBookingHandler(svc service.BookingService, loc *time.Location) *BookingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingHandler{svc: svc, loc: loc, now: time.Now}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/bookings")
	bookings.GET("", h.ListBookings)
	bookings.POST("", h.CreateBooking)
	bookings.GET("/stats", h.Stats)
	bookings.GET("/:id", h.GetBooking)
	bookings.PATCH("/:id", h.UpdateBooking)

	e.GET("/api/calendar", h.Calendar)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "serviceId must be a UUID")
	}
	in := service.CreateBookingInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		ServiceID:   serviceID,
		Date:        *req.Date,
		Location:    req.Location,
		Notes:       req.Notes,
		TotalPrice:  req.TotalPrice,
		Duration:    req.Duration,
		DepositPaid: req.DepositPaid,
		AddOns:      make(models.AddOns, 0, len(req.AddOns)),
	}
	if strings.TrimSpace(req.Status) != "" {
		status, err := models.ParseBookingStatus(req.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		in.Status = status
	}
	for _, a := range req.AddOns {
		in.AddOns = append(in.AddOns, models.AddOn{Name: a.Name, Price: a.Price})
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), in)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := idParam(c, "booking")
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// ListBookings serves the availability query. from/to accept RFC 3339
// instants or studio-local YYYY-MM-DD dates; a bare "to" date covers the
// whole day.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	var in service.ListBookingsInput
	if raw := c.QueryParam("from"); raw != "" {
		from, err := h.parseBound(raw, false)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from: "+raw)
		}
		in.From = &from
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err := h.parseBound(raw, true)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to: "+raw)
		}
		in.To = &to
	}
	if raw := c.QueryParam("status"); raw != "" {
		status, err := models.ParseBookingStatus(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		in.Status = &status
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), in)
	if err != nil {
		return mapServiceError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := idParam(c, "booking")
	if err != nil {
		return err
	}

	var req dto.UpdateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := service.UpdateBookingInput{
		Notes:       req.Notes,
		Location:    req.Location,
		TotalPrice:  req.TotalPrice,
		DepositPaid: req.DepositPaid,
	}
	if req.Status != nil {
		status, err := models.ParseBookingStatus(*req.Status)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		in.Status = &status
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), id, in)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Stats(c echo.Context) error {
	counts, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, dto.ToStatsResponse(counts))
}

func (h *BookingHandler) Calendar(c echo.Context) error {
	mode, err := calendar.ParseMode(c.QueryParam("view"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	anchor := h.now().In(h.loc)
	if raw := c.QueryParam("date"); raw != "" {
		anchor, err = time.ParseInLocation(dateLayout, raw, h.loc)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
	}

	view, err := h.svc.Calendar(c.Request().Context(), calendar.NewCursor(anchor, mode))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) parseBound(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation(dateLayout, raw, h.loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Microsecond), nil
	}
	return day, nil
}

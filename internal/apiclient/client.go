// Package apiclient talks to the studio HTTP API on behalf of the terminal
// client. Collection reads go through a Cache that mutations invalidate by
// key, and fetched bookings pass a decode boundary before anything else
// sees them.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shutterdesk/studio/internal/calendar"
	"github.com/shutterdesk/studio/internal/dto"
	"github.com/shutterdesk/studio/internal/models"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	loc     *time.Location
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		cache:   NewCache(),
		loc:     time.Local,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Cache() *Cache { return c.cache }

func (c *Client) Location() *time.Location { return c.loc }

// BookingFilter narrows ListBookings. Filtered reads bypass the cache.
type BookingFilter struct {
	From   *time.Time
	To     *time.Time
	Status models.BookingStatus
}

func (f BookingFilter) empty() bool {
	return f.From == nil && f.To == nil && f.Status == ""
}

func (f BookingFilter) query() url.Values {
	q := url.Values{}
	if f.From != nil {
		q.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		q.Set("to", f.To.UTC().Format(time.RFC3339))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	return q
}

// Bookings returns every booking, from the cache when it is warm.
func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	return c.ListBookings(ctx, BookingFilter{})
}

func (c *Client) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	if filter.empty() {
		if v, ok := cached[[]Booking](c.cache, KeyBookings); ok {
			return v, nil
		}
	}

	body, err := c.doRaw(ctx, http.MethodGet, "/api/bookings", filter.query(), nil)
	if err != nil {
		return nil, err
	}
	bookings, rejected, err := DecodeBookings(body)
	if err != nil {
		return nil, err
	}
	for _, r := range rejected {
		c.log.Warn("dropping booking that failed to decode",
			slog.Int("index", r.Index),
			slog.String("booking_id", r.ID),
			slog.String("reason", r.Reason),
		)
	}
	if filter.empty() {
		c.cache.Set(KeyBookings, bookings)
	}
	return bookings, nil
}

func (c *Client) Booking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	body, err := c.doRaw(ctx, http.MethodGet, "/api/bookings/"+id.String(), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne(body)
}

// CreateBooking validates the form locally first; an invalid form returns
// a *FormError and nothing is sent.
func (c *Client) CreateBooking(ctx context.Context, form AppointmentForm) (*Booking, error) {
	req, err := form.Request(c.loc)
	if err != nil {
		return nil, err
	}
	return c.PostBooking(ctx, req)
}

func (c *Client) PostBooking(ctx context.Context, req dto.CreateBookingRequest) (*Booking, error) {
	body, err := c.doRaw(ctx, http.MethodPost, "/api/bookings", nil, req)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyBookings, KeyAnalytics, KeyClients)
	return decodeOne(body)
}

func (c *Client) UpdateBooking(ctx context.Context, id uuid.UUID, req dto.UpdateBookingRequest) (*Booking, error) {
	body, err := c.doRaw(ctx, http.MethodPatch, "/api/bookings/"+id.String(), nil, req)
	if err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyBookings, KeyAnalytics)
	return decodeOne(body)
}

func (c *Client) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*Booking, error) {
	s := string(status)
	return c.UpdateBooking(ctx, id, dto.UpdateBookingRequest{Status: &s})
}

func (c *Client) Stats(ctx context.Context) (dto.StatsResponse, error) {
	if v, ok := cached[dto.StatsResponse](c.cache, KeyAnalytics); ok {
		return v, nil
	}
	var stats dto.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/bookings/stats", nil, nil, &stats); err != nil {
		return dto.StatsResponse{}, err
	}
	c.cache.Set(KeyAnalytics, stats)
	return stats, nil
}

// Calendar asks the server to render a grid.
func (c *Client) Calendar(ctx context.Context, mode calendar.Mode, date time.Time) (calendar.View, error) {
	q := url.Values{}
	q.Set("view", string(mode))
	q.Set("date", date.In(c.loc).Format(FormDateLayout))
	var view calendar.View
	if err := c.do(ctx, http.MethodGet, "/api/calendar", q, nil, &view); err != nil {
		return calendar.View{}, err
	}
	return view, nil
}

func (c *Client) Services(ctx context.Context) ([]dto.ServiceResponse, error) {
	if v, ok := cached[[]dto.ServiceResponse](c.cache, KeyServices); ok {
		return v, nil
	}
	var services []dto.ServiceResponse
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, nil, &services); err != nil {
		return nil, err
	}
	c.cache.Set(KeyServices, services)
	return services, nil
}

func (c *Client) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	var svc dto.ServiceResponse
	if err := c.do(ctx, http.MethodPost, "/api/services", nil, req, &svc); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyServices)
	return &svc, nil
}

func (c *Client) Clients(ctx context.Context) ([]dto.ClientResponse, error) {
	if v, ok := cached[[]dto.ClientResponse](c.cache, KeyClients); ok {
		return v, nil
	}
	var clients []dto.ClientResponse
	if err := c.do(ctx, http.MethodGet, "/api/clients", nil, nil, &clients); err != nil {
		return nil, err
	}
	c.cache.Set(KeyClients, clients)
	return clients, nil
}

func (c *Client) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	var client dto.ClientResponse
	if err := c.do(ctx, http.MethodPost, "/api/clients", nil, req, &client); err != nil {
		return nil, err
	}
	c.cache.Invalidate(KeyClients)
	return &client, nil
}

func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRaw(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	body, err := c.doRaw(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e dto.ErrorResponse
		_ = json.Unmarshal(body, &e)
		return nil, newAPIError(resp.StatusCode, e.Message)
	}
	return body, nil
}

func decodeOne(body []byte) (*Booking, error) {
	b, derr := decodeBooking(0, body)
	if derr != nil {
		return nil, derr
	}
	return &b, nil
}

// Package client is the Go consumer of the booking API. It mirrors the
// behavior the public widget and the admin panel rely on: aggressive
// fallbacks keep the booking flow usable when the backend is unreachable.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"barbershop/internal/domain"
	"barbershop/internal/pkg/timeslot"
	"barbershop/internal/repository"
)

// FailMode decides what an availability check reports when the backend
// cannot be reached. FailOpen lets the flow continue and relies on the
// server-side conflict check at save time; FailClosed refuses the slot.
type FailMode int

const (
	FailOpen FailMode = iota
	FailClosed
)

const defaultTimeout = 15 * time.Second

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	failMode   FailMode

	redis    *redis.Client
	cacheTTL time.Duration
}

type Option func(*Client)

// WithFailMode overrides the default FailOpen availability behavior.
func WithFailMode(mode FailMode) Option {
	return func(c *Client) { c.failMode = mode }
}

// WithRedisCache caches GET responses (slots, services, settings) in Redis.
func WithRedisCache(redisClient *redis.Client, ttl time.Duration) Option {
	return func(c *Client) {
		c.redis = redisClient
		c.cacheTTL = ttl
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs a previously obtained admin token.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current admin token, empty when not logged in.
func (c *Client) Token() string { return c.token }

func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.doGet(ctx, "/api/v1/health", &out)
}

// GetAvailableSlots returns bookable times for a date. When the backend
// is unreachable it falls back to the static grid so the widget still
// renders choices; fromFallback tells the caller which one they got.
func (c *Client) GetAvailableSlots(ctx context.Context, date string) (slots []string, fromFallback bool, err error) {
	var out struct {
		Slots []string `json:"slots"`
	}
	cacheKey := "slots:" + date
	if c.readCache(ctx, cacheKey, &out) {
		return out.Slots, false, nil
	}
	if err := c.doGet(ctx, "/api/v1/slots?date="+url.QueryEscape(date), &out); err != nil {
		return timeslot.FallbackGrid(), true, nil
	}
	c.writeCache(ctx, cacheKey, out)
	return out.Slots, false, nil
}

// CheckAvailability asks whether a slot can be booked. Backend failures
// resolve per the configured FailMode.
func (c *Client) CheckAvailability(ctx context.Context, date, clock string, duration int) (bool, error) {
	endpoint := fmt.Sprintf("/api/v1/availability?date=%s&time=%s&duration=%d",
		url.QueryEscape(date), url.QueryEscape(clock), duration)
	var out struct {
		Available bool `json:"available"`
	}
	if err := c.doGet(ctx, endpoint, &out); err != nil {
		if c.failMode == FailOpen {
			return true, nil
		}
		return false, err
	}
	return out.Available, nil
}

type BookingRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes,omitempty"`
}

type BookingResult struct {
	Booking  *domain.Booking `json:"booking"`
	WhatsApp string          `json:"whatsapp,omitempty"`
}

// SaveBooking submits a booking. There is no fallback: a booking either
// reaches the backend or the caller must tell the user it failed.
func (c *Client) SaveBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	var out BookingResult
	if err := c.doPost(ctx, "/api/v1/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetServices returns the catalog, or the built-in defaults when the
// backend is unreachable.
func (c *Client) GetServices(ctx context.Context) (services []domain.Service, fromFallback bool) {
	var out struct {
		Services []domain.Service `json:"services"`
	}
	if c.readCache(ctx, "services", &out) {
		return out.Services, false
	}
	if err := c.doGet(ctx, "/api/v1/services", &out); err != nil || len(out.Services) == 0 {
		return domain.DefaultServices(), true
	}
	c.writeCache(ctx, "services", out)
	return out.Services, false
}

// GetSettings returns the shop configuration, defaulting when unreachable.
func (c *Client) GetSettings(ctx context.Context) (settings domain.Settings, fromFallback bool) {
	var out domain.Settings
	if c.readCache(ctx, "settings", &out) {
		return out, false
	}
	if err := c.doGet(ctx, "/api/v1/settings", &out); err != nil {
		return domain.DefaultSettings(), true
	}
	c.writeCache(ctx, "settings", out)
	return out, false
}

func (c *Client) GetBlockedDates(ctx context.Context) ([]domain.BlockedDate, error) {
	var out struct {
		BlockedDates []domain.BlockedDate `json:"blockedDates"`
	}
	if err := c.doGet(ctx, "/api/v1/blocked-dates", &out); err != nil {
		return nil, err
	}
	return out.BlockedDates, nil
}

// Login authenticates the staff account and keeps the token for the
// admin calls that follow.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.doPost(ctx, "/api/v1/auth/login", body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Logout drops the token; sessions are stateless on the server.
func (c *Client) Logout() { c.token = "" }

func (c *Client) GetBookings(ctx context.Context, date, status string) ([]domain.Booking, error) {
	endpoint := "/api/v1/admin/bookings"
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if status != "" {
		q.Set("status", status)
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var out struct {
		Bookings []domain.Booking `json:"bookings"`
	}
	if err := c.doGet(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, ref, status string) (*domain.Booking, error) {
	var out struct {
		Booking *domain.Booking `json:"booking"`
	}
	body := map[string]string{"status": status}
	err := c.doJSON(ctx, http.MethodPatch, "/api/v1/admin/bookings/"+url.PathEscape(ref)+"/status", body, &out)
	if err != nil {
		return nil, err
	}
	return out.Booking, nil
}

func (c *Client) DeleteBooking(ctx context.Context, ref string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/admin/bookings/"+url.PathEscape(ref), nil, nil)
}

// GetStats returns the dashboard counters, zeroed when unreachable so
// the panel renders instead of crashing.
func (c *Client) GetStats(ctx context.Context) (stats repository.Stats, fromFallback bool) {
	var out repository.Stats
	if err := c.doGet(ctx, "/api/v1/admin/stats", &out); err != nil {
		return repository.Stats{}, true
	}
	return out, false
}

func (c *Client) SaveWorkingHours(ctx context.Context, wh domain.WorkingHours) (domain.Settings, error) {
	var out domain.Settings
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/admin/settings/working-hours", wh, &out)
	return out, err
}

func (c *Client) SaveWhatsApp(ctx context.Context, wa domain.WhatsApp) (domain.Settings, error) {
	var out domain.Settings
	err := c.doJSON(ctx, http.MethodPut, "/api/v1/admin/settings/whatsapp", wa, &out)
	return out, err
}

type BlockedDateRequest struct {
	Description string `json:"description"`
	Type        string `json:"type"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	OpenStart   string `json:"openStart,omitempty"`
	OpenEnd     string `json:"openEnd,omitempty"`
	BreakStart  string `json:"breakStart,omitempty"`
	BreakEnd    string `json:"breakEnd,omitempty"`
}

func (c *Client) AddBlockedDate(ctx context.Context, req BlockedDateRequest) (*domain.BlockedDate, error) {
	var out struct {
		BlockedDate *domain.BlockedDate `json:"blockedDate"`
	}
	if err := c.doPost(ctx, "/api/v1/admin/blocked-dates", req, &out); err != nil {
		return nil, err
	}
	return out.BlockedDate, nil
}

func (c *Client) DeleteBlockedDate(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/admin/blocked-dates/%d", id), nil, nil)
}

func (c *Client) GetSlotOverrides(ctx context.Context, date string) ([]string, error) {
	var out struct {
		Times []string `json:"times"`
	}
	if err := c.doGet(ctx, "/api/v1/admin/slot-overrides?date="+url.QueryEscape(date), &out); err != nil {
		return nil, err
	}
	return out.Times, nil
}

func (c *Client) SaveSlotOverrides(ctx context.Context, date string, times []string) error {
	body := map[string]any{"date": date, "times": times}
	return c.doJSON(ctx, http.MethodPut, "/api/v1/admin/slot-overrides", body, nil)
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, "barbershop:"+key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, "barbershop:"+key, data, c.cacheTTL).Err()
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) doPost(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("http %d: %w", resp.StatusCode, err)
	}
	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

package mews

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	defaultPageSize = 100
	maxPages        = 100
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс метрик запросов к upstream
type Metrics interface {
	ObserveUpstream(endpoint, status string, d time.Duration)
}

// Config параметры клиента
type Config struct {
	BaseURL      string
	ClientToken  string
	AccessToken  string
	ClientName   string
	EnterpriseID string
	Timeout      time.Duration
	RatePerSec   float64 // 0 - без ограничения
	Burst        int
	PageSize     int
}

// Client клиент для работы с Mews Connector API
type Client struct {
	baseURL      string
	auth         auth
	enterpriseID string
	pageSize     int
	httpClient   *http.Client
	limiter      *rate.Limiter
	log          Logger
	metrics      Metrics
}

// NewClient создает новый экземпляр клиента Mews
func NewClient(cfg Config, log Logger, metrics Metrics) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), max(cfg.Burst, 1))
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		auth: auth{
			ClientToken: cfg.ClientToken,
			AccessToken: cfg.AccessToken,
			Client:      cfg.ClientName,
		},
		enterpriseID: cfg.EnterpriseID,
		pageSize:     pageSize,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
		log:     log,
		metrics: metrics,
	}
}

// FetchCatalog получает категории ресурсов сервисов
func (c *Client) FetchCatalog(ctx context.Context, serviceIDs []string) ([]domain.ResourceCategory, error) {
	req := categoriesRequest{
		auth:           c.auth,
		EnterpriseIDs:  c.enterprises(),
		ServiceIDs:     serviceIDs,
		IncludeDefault: false,
		Limitation:     limitation{Count: c.pageSize},
	}

	var result []domain.ResourceCategory
	err := c.paginate(ctx, func(cursor string) (string, int, error) {
		req.Limitation.Cursor = cursor

		var resp categoriesResponse
		if err := c.post(ctx, endpointCategories, req, &resp); err != nil {
			return "", 0, err
		}
		for _, rc := range resp.ResourceCategories {
			if _, err := uuid.Parse(rc.ID); err != nil {
				c.log.Warn("Mews: skipping resource category with invalid id %q", rc.ID)
				continue
			}
			result = append(result, domain.ResourceCategory{
				ID:        rc.ID,
				ServiceID: rc.ServiceID,
				Type:      domain.CategoryType(rc.Type),
				Active:    rc.IsActive,
				Name:      pickName(rc.Names),
			})
		}
		return resp.Cursor, len(resp.ResourceCategories), nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("Mews: fetched %d resource categories for services %v", len(result), serviceIDs)
	return result, nil
}

// FetchBookedIntervals получает резервации, пересекающиеся с интервалом
// Отмененные резервации и некорректные записи пропускаются
func (c *Client) FetchBookedIntervals(ctx context.Context, rng domain.TimeRange, serviceIDs []string) ([]domain.BookedInterval, error) {
	req := reservationsRequest{
		auth:       c.auth,
		StartUtc:   formatUTC(rng.Start),
		EndUtc:     formatUTC(rng.End),
		ServiceIDs: serviceIDs,
		Limitation: limitation{Count: c.pageSize},
	}

	var result []domain.BookedInterval
	err := c.paginate(ctx, func(cursor string) (string, int, error) {
		req.Limitation.Cursor = cursor

		var resp reservationsResponse
		if err := c.post(ctx, endpointReservations, req, &resp); err != nil {
			return "", 0, err
		}
		for _, r := range resp.Reservations {
			if r.State == domain.ReservationStateCanceled {
				continue
			}
			interval, err := parseReservation(r)
			if err != nil {
				c.log.Warn("Mews: skipping malformed reservation %q: %v", r.ID, err)
				continue
			}
			result = append(result, interval)
		}
		return resp.Cursor, len(resp.Reservations), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// FetchBlockIntervals получает блокировки ресурсов, пересекающиеся с интервалом
func (c *Client) FetchBlockIntervals(ctx context.Context, rng domain.TimeRange) ([]domain.BlockInterval, error) {
	req := blocksRequest{
		auth:          c.auth,
		EnterpriseIDs: c.enterprises(),
		CollidingUtc: timeInterval{
			StartUtc: formatUTC(rng.Start),
			EndUtc:   formatUTC(rng.End),
		},
		Limitation: limitation{Count: c.pageSize},
	}

	var result []domain.BlockInterval
	err := c.paginate(ctx, func(cursor string) (string, int, error) {
		req.Limitation.Cursor = cursor

		var resp blocksResponse
		if err := c.post(ctx, endpointBlocks, req, &resp); err != nil {
			return "", 0, err
		}
		for _, b := range resp.ResourceBlocks {
			interval, err := parseBlock(b)
			if err != nil {
				c.log.Warn("Mews: skipping malformed resource block %q: %v", b.ID, err)
				continue
			}
			result = append(result, interval)
		}
		return resp.Cursor, len(resp.ResourceBlocks), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// paginate вызывает fetch, пока Mews возвращает полные страницы
func (c *Client) paginate(ctx context.Context, fetch func(cursor string) (next string, count int, err error)) error {
	cursor := ""
	for page := 0; page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		next, count, err := fetch(cursor)
		if err != nil {
			return err
		}
		if next == "" || next == cursor || count < c.pageSize {
			return nil
		}
		cursor = next
	}
	return fmt.Errorf("%w: more than %d pages", ErrInvalidResponse, maxPages)
}

// post выполняет запрос к Connector API и декодирует ответ
func (c *Client) post(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "error", start)
		return fmt.Errorf("%w: failed to execute request %s: %v", ErrInternal, endpoint, err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, strconv.Itoa(resp.StatusCode), start)

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s: %s", ErrInvalidRequest, endpoint, readError(resp.Body))
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s: %s", ErrUnauthorized, endpoint, readError(resp.Body))
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, endpoint)
	default:
		return fmt.Errorf("%w: unexpected status code %d from %s: %s",
			ErrInvalidResponse, resp.StatusCode, endpoint, readError(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", ErrInvalidResponse, endpoint, err)
	}
	return nil
}

func (c *Client) observe(endpoint, status string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveUpstream(endpoint, status, time.Since(start))
	}
}

func (c *Client) enterprises() []string {
	if c.enterpriseID == "" {
		return nil
	}
	return []string{c.enterpriseID}
}

// readError извлекает сообщение об ошибке из тела ответа
func readError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	var e ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(raw)
}

func parseReservation(r reservation) (domain.BookedInterval, error) {
	if _, err := uuid.Parse(r.RequestedCategoryID); err != nil {
		return domain.BookedInterval{}, fmt.Errorf("invalid category id %q", r.RequestedCategoryID)
	}
	start, err := parseUTC(r.StartUtc)
	if err != nil {
		return domain.BookedInterval{}, err
	}
	end, err := parseUTC(r.EndUtc)
	if err != nil {
		return domain.BookedInterval{}, err
	}

	interval := domain.BookedInterval{
		ID:         r.ID,
		CategoryID: r.RequestedCategoryID,
		Start:      start,
		End:        end,
	}
	return interval, interval.Validate()
}

func parseBlock(b resourceBlock) (domain.BlockInterval, error) {
	start, err := parseUTC(b.StartUtc)
	if err != nil {
		return domain.BlockInterval{}, err
	}
	end, err := parseUTC(b.EndUtc)
	if err != nil {
		return domain.BlockInterval{}, err
	}

	interval := domain.BlockInterval{
		ID:                 b.ID,
		AssignedResourceID: b.AssignedResourceID,
		Start:              start,
		End:                end,
		Active:             b.IsActive,
	}
	return interval, interval.Validate()
}

func parseUTC(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UTC(), nil
}

func formatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// pickName выбирает название категории: en-US, затем любое
func pickName(names map[string]string) string {
	if name, ok := names["en-US"]; ok {
		return name
	}
	for _, name := range names {
		return name
	}
	return ""
}

package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/localtime"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/pairing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Validate проверяет конфигурацию целиком и возвращает первую найденную ошибку
func (c *Config) Validate() error {
	checks := []func() error{
		c.validateServer,
		c.validateUpstream,
		c.validateServices,
		c.validateBooking,
		c.validatePartitioning,
		c.validateNightOptions,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	return nil
}

func (c *Config) validateUpstream() error {
	switch c.Upstream.Source {
	case SourceMews:
		if c.Mews.BaseURL == "" {
			return fmt.Errorf("mews.base_url is required")
		}
		if c.Mews.ClientToken == "" || c.Mews.AccessToken == "" {
			return fmt.Errorf("%s and %s are required for source %q", EnvMewsClientToken, EnvMewsAccessToken, SourceMews)
		}
		if c.Mews.RatePerSec < 0 {
			return fmt.Errorf("mews.rate_per_sec must not be negative")
		}
	case SourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("database.host and database.dbname are required for source %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("upstream.source %q is not one of %q, %q", c.Upstream.Source, SourceMews, SourcePostgres)
	}
	return nil
}

func (c *Config) validateServices() error {
	if err := validateUUID("services.day_service_id", c.Services.DayServiceID); err != nil {
		return err
	}
	if err := validateUUID("services.night_service_id", c.Services.NightServiceID); err != nil {
		return err
	}
	if c.Services.DayServiceID == c.Services.NightServiceID {
		return fmt.Errorf("day and night services must differ")
	}
	if len(c.Services.CategoryTypes) == 0 {
		return fmt.Errorf("services.category_types must not be empty")
	}
	return nil
}

func (c *Config) validateBooking() error {
	b := c.Booking

	if _, err := localtime.Load(b.TimeZone); err != nil {
		return err
	}
	if b.BufferHours < 0 {
		return fmt.Errorf("booking.buffer_hours must not be negative")
	}
	if b.DayMinHours <= 0 || b.ReducedMinHours <= 0 {
		return fmt.Errorf("booking minimum durations must be positive")
	}
	if b.DayMinHours > b.DayMaxHours || b.ReducedMinHours > b.DayMaxHours {
		return fmt.Errorf("booking minimum durations exceed day_max_hours %d", b.DayMaxHours)
	}
	if len(b.ArrivalTimes) == 0 || len(b.DepartureTimes) == 0 {
		return fmt.Errorf("booking arrival and departure grids must not be empty")
	}
	for _, ts := range append(append([]types.TimeString{}, b.ArrivalTimes...), b.DepartureTimes...) {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("booking grid: %v", err)
		}
	}
	if err := b.CheckIn.Validate(); err != nil {
		return fmt.Errorf("booking.check_in: %v", err)
	}
	if err := b.CheckOut.Validate(); err != nil {
		return fmt.Errorf("booking.check_out: %v", err)
	}
	if _, err := pairing.NewMapping(b.SuitePairs); err != nil {
		return fmt.Errorf("booking.suite_pairs: %v", err)
	}
	return nil
}

func (c *Config) validatePartitioning() error {
	p := c.Partitioning
	if p.DayMaxDays <= 0 || p.NightMaxDays <= 0 {
		return fmt.Errorf("partitioning max days must be positive")
	}
	if p.DayMaxHours <= 0 || p.NightMaxHours <= 0 {
		return fmt.Errorf("partitioning max hours must be positive")
	}
	if p.DayWorkers <= 0 || p.NightWorkers <= 0 {
		return fmt.Errorf("partitioning workers must be positive")
	}
	if p.BlockBufferDays < 0 {
		return fmt.Errorf("partitioning.block_buffer_days must not be negative")
	}
	if p.MaxDates <= 0 {
		return fmt.Errorf("partitioning.max_dates must be positive")
	}
	return nil
}

func (c *Config) validateNightOptions() error {
	n := c.NightOptions
	if n.MaxNights <= 0 {
		return fmt.Errorf("night_options.max_nights must be positive")
	}
	if !domain.OptionTarget(n.Target).IsValid() {
		return fmt.Errorf("night_options.target %q is unknown", n.Target)
	}
	if err := n.EarlyCheckIn().Validate(); err != nil {
		return fmt.Errorf("night_options.early_check_in: %v", err)
	}
	if err := n.LateCheckOut().Validate(); err != nil {
		return fmt.Errorf("night_options.late_check_out: %v", err)
	}
	return nil
}

func validateUUID(field, value string) error {
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%s %q is not a uuid", field, value)
	}
	return nil
}

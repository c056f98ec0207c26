package config

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Default возвращает конфигурацию по умолчанию для заведения в Брюсселе
// Значения из файла накладываются поверх
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    60,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "smc_availability_service",
		},
		Upstream: UpstreamConfig{
			Source: SourceMews,
		},
		Mews: MewsConfig{
			BaseURL:      "https://api.mews-demo.com/api/connector/v1",
			ClientName:   "Intense Experience 1.0.0",
			EnterpriseID: "c390a691-e9a0-4aa0-860c-b3850108ab4c",
			Timeout:      30,
			RatePerSec:   10,
			Burst:        5,
			PageSize:     100,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "smc_availability",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Services: ServicesConfig{
			DayServiceID:   "86fcc6a7-75ce-457a-a425-b3850108b6bf",
			NightServiceID: "7ba0b732-93cc-477a-861d-b3850108b730",
			CategoryTypes:  []string{string(domain.CategorySuite), string(domain.CategoryRoom)},
		},
		Booking: BookingConfig{
			TimeZone:        domain.DefaultTimeZone,
			BufferHours:     domain.DefaultBufferHours,
			DayMinHours:     domain.DefaultDayMinHours,
			DayMaxHours:     domain.DefaultDayMaxHours,
			ReducedMinHours: domain.DefaultReducedMinHours,
			ReducedCategories: []string{
				"f5539e51-9db0-4082-b87e-b3850108c66f", // EUPHORYA
				"78a614b1-199d-4608-ab89-b3850108c66f", // IGNIS
				"67ece5a2-65e2-43c5-9079-b3850108c66f", // KAIROS
				"1113bcbe-ad5f-49c7-8dc0-b3850108c66f", // AETHER
			},
			ArrivalTimes:       []types.TimeString{"12:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
			DepartureTimes:     []types.TimeString{"13:00", "14:00", "15:00", "16:00", "17:00", "18:00"},
			CheckIn:            "19:00",
			CheckOut:           "10:00",
			CacheMaxEntries:    4096,
			FacilityResourceID: "c390a691-e9a0-4aa0-860c-b3850108ab4c",
		},
		Partitioning: PartitioningConfig{
			DayMaxDays:      domain.DefaultPartitionMaxDays,
			DayMaxHours:     domain.DefaultPartitionMaxHours,
			NightMaxDays:    domain.DefaultPartitionMaxDays,
			NightMaxHours:   domain.DefaultPartitionMaxHours,
			DayWorkers:      domain.DefaultDayWorkers,
			NightWorkers:    domain.DefaultNightWorkers,
			BlockBufferDays: domain.DefaultBlockBufferDays,
			MaxDates:        domain.DefaultMaxDates,
		},
		NightOptions: NightOptionsConfig{
			MaxNights:        domain.DefaultNightMaxNights,
			EarlyCheckInFrom: "18:00",
			EarlyCheckInTo:   "19:00",
			LateCheckOutFrom: "10:00",
			LateCheckOutTo:   "12:00",
			Target:           "paired_day",
		},
	}
}

// defaultSuitePairs дневные и ночные категории одних и тех же сюитов
func defaultSuitePairs() map[string]string {
	return map[string]string{
		"e4706d3a-2a06-4cb7-a449-b3850108c66f": "f867b5c6-f62d-451c-96ec-b3850108c66f", // Intense
		"f723bd5a-04fe-479c-bab4-b3850108c66f": "3872869e-6278-4c64-aea8-b3850108c66f", // Gaia
		"68b87fe5-7b78-4067-b5e7-b3850108c66f": "0d535116-b1db-476e-8bff-b3850108c66f", // Extase
	}
}

// applyMapDefaults toml сливает таблицы с уже заполненными map, поэтому map-значения заполняются после разбора
func (c *Config) applyMapDefaults() {
	if c.Booking.SuitePairs == nil {
		c.Booking.SuitePairs = defaultSuitePairs()
	}
	if c.Booking.PhysicalResources == nil {
		c.Booking.PhysicalResources = map[string][]string{}
	}
}

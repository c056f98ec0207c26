package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/partition"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Источники upstream данных
const (
	SourceMews     = "mews"
	SourcePostgres = "postgres"
)

// Переменные окружения с секретами
const (
	EnvMewsClientToken = "MEWS_CLIENT_TOKEN"
	EnvMewsAccessToken = "MEWS_ACCESS_TOKEN"
	EnvDBPassword      = "DB_PASSWORD"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Upstream     UpstreamConfig     `toml:"upstream"`
	Mews         MewsConfig         `toml:"mews"`
	Database     DatabaseConfig     `toml:"database"`
	Services     ServicesConfig     `toml:"services"`
	Booking      BookingConfig      `toml:"booking"`
	Partitioning PartitioningConfig `toml:"partitioning"`
	NightOptions NightOptionsConfig `toml:"night_options"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UpstreamConfig выбор источника каталога, резерваций и блокировок
type UpstreamConfig struct {
	Source string `toml:"source"`
}

// MewsConfig параметры Mews Connector API
// Токены берутся только из окружения
type MewsConfig struct {
	BaseURL      string  `toml:"base_url"`
	ClientName   string  `toml:"client_name"`
	EnterpriseID string  `toml:"enterprise_id"`
	Timeout      int     `toml:"timeout"` // секунды
	RatePerSec   float64 `toml:"rate_per_sec"`
	Burst        int     `toml:"burst"`
	PageSize     int     `toml:"page_size"`

	ClientToken string `toml:"-"`
	AccessToken string `toml:"-"`
}

// DatabaseConfig параметры PostgreSQL зеркала
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды

	Password string `toml:"-"`
}

// DSN строка подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type ServicesConfig struct {
	DayServiceID   string   `toml:"day_service_id"`
	NightServiceID string   `toml:"night_service_id"`
	CategoryTypes  []string `toml:"category_types"`
}

// BookingConfig правила дневного и ночного режимов
type BookingConfig struct {
	TimeZone    string `toml:"timezone"`
	BufferHours int    `toml:"buffer_hours"`

	DayMinHours       int      `toml:"day_min_hours"`
	DayMaxHours       int      `toml:"day_max_hours"`
	ReducedMinHours   int      `toml:"reduced_min_hours"`
	ReducedCategories []string `toml:"reduced_categories"`

	ArrivalTimes   []types.TimeString `toml:"arrival_times"`
	DepartureTimes []types.TimeString `toml:"departure_times"`

	CheckIn  types.TimeString `toml:"check_in"`
	CheckOut types.TimeString `toml:"check_out"`

	CacheMaxEntries int `toml:"cache_max_entries"`

	// FacilityResourceID блокировка с этим ресурсом закрывает все категории
	FacilityResourceID string `toml:"facility_resource_id"`

	// SuitePairs дневная категория -> ночная категория того же сюита
	SuitePairs map[string]string `toml:"suite_pairs"`

	// PhysicalResources категория -> физические ресурсы, на которые ставятся блокировки
	PhysicalResources map[string][]string `toml:"physical_resources"`
}

// Buffer буфер уборки вокруг резерваций
func (b BookingConfig) Buffer() time.Duration {
	return time.Duration(b.BufferHours) * time.Hour
}

// SuiteBlocksMapped true, если блокировки отдельных ресурсов сопоставлены категориям
// Без таблицы применяются только блокировки всего заведения
func (b BookingConfig) SuiteBlocksMapped() bool {
	for _, resources := range b.PhysicalResources {
		if len(resources) > 0 {
			return true
		}
	}
	return false
}

// Policies политики длительности дневного режима
func (b BookingConfig) Policies() domain.Policies {
	reduced := make(map[string]struct{}, len(b.ReducedCategories))
	for _, id := range b.ReducedCategories {
		reduced[id] = struct{}{}
	}
	return domain.Policies{
		Default:           domain.DurationPolicy{MinHours: b.DayMinHours, MaxHours: b.DayMaxHours},
		Reduced:           domain.DurationPolicy{MinHours: b.ReducedMinHours, MaxHours: b.DayMaxHours},
		ReducedCategories: reduced,
	}
}

// PartitioningConfig ограничения размера партиций и параллелизма
type PartitioningConfig struct {
	DayMaxDays      int `toml:"day_max_days"`
	DayMaxHours     int `toml:"day_max_hours"`
	NightMaxDays    int `toml:"night_max_days"`
	NightMaxHours   int `toml:"night_max_hours"`
	DayWorkers      int `toml:"day_workers"`
	NightWorkers    int `toml:"night_workers"`
	BlockBufferDays int `toml:"block_buffer_days"`
	MaxDates        int `toml:"max_dates"`
}

func (p PartitioningConfig) Day(buffer time.Duration) partition.Partitioner {
	return partition.Partitioner{MaxDays: p.DayMaxDays, MaxHours: p.DayMaxHours, Buffer: buffer}
}

func (p PartitioningConfig) Night(buffer time.Duration) partition.Partitioner {
	return partition.Partitioner{MaxDays: p.NightMaxDays, MaxHours: p.NightMaxHours, Buffer: buffer}
}

// NightOptionsConfig опции раннего заезда и позднего выезда
type NightOptionsConfig struct {
	MaxNights        int              `toml:"max_nights"`
	EarlyCheckInFrom types.TimeString `toml:"early_check_in_from"`
	EarlyCheckInTo   types.TimeString `toml:"early_check_in_to"`
	LateCheckOutFrom types.TimeString `toml:"late_check_out_from"`
	LateCheckOutTo   types.TimeString `toml:"late_check_out_to"`
	Target           string           `toml:"target"`
}

// EarlyCheckIn окно раннего заезда
func (n NightOptionsConfig) EarlyCheckIn() domain.OptionWindow {
	return domain.OptionWindow{From: n.EarlyCheckInFrom, To: n.EarlyCheckInTo}
}

// OptionTarget чьи резервации проверяются для опций
func (n NightOptionsConfig) OptionTarget() domain.OptionTarget {
	return domain.OptionTarget(n.Target)
}

// LateCheckOut окно позднего выезда
func (n NightOptionsConfig) LateCheckOut() domain.OptionWindow {
	return domain.OptionWindow{From: n.LateCheckOutFrom, To: n.LateCheckOutTo}
}

// CategoryTypes типы категорий, участвующие в проверке
func (c *Config) CategoryTypes() []domain.CategoryType {
	out := make([]domain.CategoryType, len(c.Services.CategoryTypes))
	for i, t := range c.Services.CategoryTypes {
		out[i] = domain.CategoryType(t)
	}
	return out
}

// Load загружает конфигурацию из файла
// .env подхватывается при наличии, секреты читаются из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}
	cfg.applyMapDefaults()

	cfg.Mews.ClientToken = os.Getenv(EnvMewsClientToken)
	cfg.Mews.AccessToken = os.Getenv(EnvMewsAccessToken)
	cfg.Database.Password = os.Getenv(EnvDBPassword)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

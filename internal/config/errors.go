package config

import "errors"

var (
	// ErrLoadConfig возвращается при ошибке чтения или разбора файла конфигурации
	ErrLoadConfig = errors.New("config: failed to load config")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid config")
)

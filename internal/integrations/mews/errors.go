package mews

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сеть, сериализация)
	ErrInternal = errors.New("mews client: internal error")

	// ErrInvalidRequest возвращается, если Mews отклонил запрос (400)
	ErrInvalidRequest = errors.New("mews client: invalid request")

	// ErrUnauthorized возвращается при неверных токенах (401, 403)
	ErrUnauthorized = errors.New("mews client: unauthorized")

	// ErrRateLimited возвращается, если Mews ограничил частоту запросов (429)
	ErrRateLimited = errors.New("mews client: rate limited")

	// ErrInvalidResponse возвращается при некорректном ответе от Mews
	ErrInvalidResponse = errors.New("mews client: invalid response")
)

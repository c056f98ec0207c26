package mews

// Endpoints Connector API
const (
	endpointCategories   = "resourceCategories/getAll"
	endpointReservations = "reservations/getAll"
	endpointBlocks       = "resourceBlocks/getAll"
)

// auth поля авторизации, передаются в теле каждого запроса
type auth struct {
	ClientToken string `json:"ClientToken"`
	AccessToken string `json:"AccessToken"`
	Client      string `json:"Client"`
}

// limitation постраничная выборка
type limitation struct {
	Count  int    `json:"Count"`
	Cursor string `json:"Cursor,omitempty"`
}

type timeInterval struct {
	StartUtc string `json:"StartUtc"`
	EndUtc   string `json:"EndUtc"`
}

type categoriesRequest struct {
	auth
	EnterpriseIDs  []string   `json:"EnterpriseIds,omitempty"`
	ServiceIDs     []string   `json:"ServiceIds"`
	IncludeDefault bool       `json:"IncludeDefault"`
	Limitation     limitation `json:"Limitation"`
}

type categoriesResponse struct {
	ResourceCategories []resourceCategory `json:"ResourceCategories"`
	Cursor             string             `json:"Cursor"`
}

// resourceCategory категория ресурса в Mews
type resourceCategory struct {
	ID        string            `json:"Id"`
	ServiceID string            `json:"ServiceId"`
	Type      string            `json:"Type"`
	IsActive  bool              `json:"IsActive"`
	Names     map[string]string `json:"Names"`
}

type reservationsRequest struct {
	auth
	StartUtc   string     `json:"StartUtc"`
	EndUtc     string     `json:"EndUtc"`
	ServiceIDs []string   `json:"ServiceIds,omitempty"`
	Limitation limitation `json:"Limitation"`
}

type reservationsResponse struct {
	Reservations []reservation `json:"Reservations"`
	Cursor       string        `json:"Cursor"`
}

// reservation резервация в Mews
type reservation struct {
	ID                  string `json:"Id"`
	ServiceID           string `json:"ServiceId"`
	RequestedCategoryID string `json:"RequestedCategoryId"`
	StartUtc            string `json:"StartUtc"`
	EndUtc              string `json:"EndUtc"`
	State               string `json:"State"`
}

type blocksRequest struct {
	auth
	EnterpriseIDs []string     `json:"EnterpriseIds,omitempty"`
	CollidingUtc  timeInterval `json:"CollidingUtc"`
	Limitation    limitation   `json:"Limitation"`
}

type blocksResponse struct {
	ResourceBlocks []resourceBlock `json:"ResourceBlocks"`
	Cursor         string          `json:"Cursor"`
}

// resourceBlock блокировка ресурса в Mews
type resourceBlock struct {
	ID                 string `json:"Id"`
	AssignedResourceID string `json:"AssignedResourceId"`
	StartUtc           string `json:"StartUtc"`
	EndUtc             string `json:"EndUtc"`
	IsActive           bool   `json:"IsActive"`
}

// ErrorResponse модель ошибки от Mews
type ErrorResponse struct {
	Message string `json:"Message"`
}

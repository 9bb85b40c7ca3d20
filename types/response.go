package types

type ApiResponse struct {
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

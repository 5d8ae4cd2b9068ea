package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CategoryListResponse respuesta de GET /api/categories.
type CategoryListResponse struct {
	Items []string `json:"items"`
}

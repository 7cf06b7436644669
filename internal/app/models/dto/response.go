package dto

// SuccessResponse represents a plain message response.
type SuccessResponse struct {
	Message string `json:"message"`
}

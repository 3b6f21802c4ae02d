package dto

// SuccessResponse is returned by operations that have nothing else to say
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse reports the status of the API and its database
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

package handler

// HealthResponse represents the JSON response for the /health endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

package models

// AskRequest is the body accepted by POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is returned by POST /ask.
type AskResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ErrorResponse is the body of every JSON error returned by the HTTP surface.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

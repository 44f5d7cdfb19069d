package models

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid request"`
}

// MessageResponse represents a success message response
type MessageResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// TokenResponse represents a login response with JWT token
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name        string   `json:"name" example:"Sensor Calibration Study"`
	Description string   `json:"description,omitempty"`
	EndDate     *string  `json:"end_date,omitempty" example:"2026-09-30T00:00:00Z"`
	TeamIDs     []string `json:"team_ids,omitempty"`
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title     string  `json:"title" example:"Calibrate Sensor"`
	DueDate   *string `json:"due_date,omitempty" example:"2026-09-04T00:00:00Z"`
	Assignee  string  `json:"assignee,omitempty"`
	ProjectID string  `json:"project_id,omitempty"`
}

// UpdatePreferencesRequest toggles a user's email notification opt-in
type UpdatePreferencesRequest struct {
	EmailNotifications bool `json:"email_notifications" example:"true"`
}

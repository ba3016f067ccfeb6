package template

import "time"

type UpsertTemplateRequest struct {
	Name      string   `json:"name" binding:"required"`
	Positions []string `json:"positions" binding:"required"`
}

// UpdateTemplateRequest keeps the current value of every omitted field.
type UpdateTemplateRequest struct {
	Name      *string  `json:"name"`
	Positions []string `json:"positions"`
}

type TemplateResponse struct {
	Group     string    `json:"group"`
	Name      string    `json:"name"`
	Positions []string  `json:"positions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

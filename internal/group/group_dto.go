package group

import "time"

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenameGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

package dto

import (
	"time"

	"pharmacy-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// Response DTOs

type AuditActorResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role int       `json:"role"`
}

type AuditLogResponse struct {
	ID        int64               `json:"id"`
	Actor     *AuditActorResponse `json:"actor,omitempty"`
	ActorID   *uuid.UUID          `json:"actor_id,omitempty"`
	Action    string              `json:"action"`
	Metadata  entity.JSON         `json:"metadata"`
	CreatedAt time.Time           `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	MeetingId uuid.UUID `json:"meeting_id" validate:"required"`
	Title     string    `json:"title"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	MeetingId uuid.UUID  `json:"meeting_id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id         uuid.UUID `json:"id"`
	Role       string    `json:"role"`
	Chat       string    `json:"chat"`
	Unverified bool      `json:"unverified,omitempty"`
	Datasource string    `json:"datasource,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required"`
}

type SendChatResponseChat struct {
	Id         uuid.UUID `json:"id"`
	Chat       string    `json:"chat"`
	Role       string    `json:"role"`
	Unverified bool      `json:"unverified,omitempty"`
	Datasource string    `json:"datasource,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle string                `json:"title"`
	Sent             *SendChatResponseChat `json:"sent"`
	Reply            *SendChatResponseChat `json:"reply"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
}

package mapper

import (
	"time"

	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(e *model.ChatSession) *entity.ChatSession {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}
	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        e.Id,
		UserId:    e.UserId,
		MeetingId: e.MeetingId,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: e.DeletedAt.Valid,
	}
}

func (m *ChatMapper) SessionToModel(e *entity.ChatSession) *model.ChatSession {
	if e == nil {
		return nil
	}
	mdl := &model.ChatSession{
		Id:        e.Id,
		UserId:    e.UserId,
		MeetingId: e.MeetingId,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		mdl.UpdatedAt = *e.UpdatedAt
	}
	return mdl
}

func (m *ChatMapper) MessageToEntity(e *model.ChatMessage) *entity.ChatMessage {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}
	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatMessage{
		Id:            e.Id,
		Chat:          e.Chat,
		Role:          e.Role,
		ChatSessionId: e.ChatSessionId,
		Unverified:    e.Unverified,
		Datasource:    e.Datasource,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		IsDeleted:     e.DeletedAt.Valid,
	}
}

func (m *ChatMapper) MessageToModel(e *entity.ChatMessage) *model.ChatMessage {
	if e == nil {
		return nil
	}
	mdl := &model.ChatMessage{
		Id:            e.Id,
		Chat:          e.Chat,
		Role:          e.Role,
		ChatSessionId: e.ChatSessionId,
		Unverified:    e.Unverified,
		Datasource:    e.Datasource,
		CreatedAt:     e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		mdl.UpdatedAt = *e.UpdatedAt
	}
	return mdl
}

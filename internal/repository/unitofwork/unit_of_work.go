package unitofwork

import (
	"context"

	"ai-minutes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MeetingRepository() contract.MeetingRepository
	TranscriptSegmentRepository() contract.TranscriptSegmentRepository
	DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}

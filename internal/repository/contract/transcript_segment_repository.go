package contract

import (
	"context"

	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TranscriptSegmentRepository interface {
	CreateBulk(ctx context.Context, segments []*entity.TranscriptSegment) error
	DeleteByMeetingId(ctx context.Context, meetingId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptSegment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package contract

import (
	"context"

	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByCollection(ctx context.Context, collection string) error
	DeleteByMeetingId(ctx context.Context, meetingId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar runs a cosine nearest-neighbour query scoped to one
	// collection. An unknown collection simply yields no rows.
	SearchSimilar(ctx context.Context, collection string, embedding []float32, limit int) ([]*entity.DocumentEmbedding, error)
}

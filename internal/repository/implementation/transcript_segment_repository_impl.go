package implementation

import (
	"context"

	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/mapper"
	"ai-minutes-be/internal/model"
	"ai-minutes-be/internal/repository/contract"
	"ai-minutes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TranscriptSegmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TranscriptSegmentMapper
}

func NewTranscriptSegmentRepository(db *gorm.DB) contract.TranscriptSegmentRepository {
	return &TranscriptSegmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewTranscriptSegmentMapper(),
	}
}

func (r *TranscriptSegmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TranscriptSegmentRepositoryImpl) CreateBulk(ctx context.Context, segments []*entity.TranscriptSegment) error {
	if len(segments) == 0 {
		return nil
	}
	models := make([]*model.TranscriptSegment, len(segments))
	for i, s := range segments {
		models[i] = r.mapper.ToModel(s)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*segments[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *TranscriptSegmentRepositoryImpl) DeleteByMeetingId(ctx context.Context, meetingId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("meeting_id = ?", meetingId).Delete(&model.TranscriptSegment{}).Error
}

func (r *TranscriptSegmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptSegment, error) {
	var models []*model.TranscriptSegment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TranscriptSegment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *TranscriptSegmentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.TranscriptSegment{}).Count(&count).Error
	return count, err
}

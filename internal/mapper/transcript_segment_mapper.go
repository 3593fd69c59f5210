package mapper

import (
	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/model"
)

type TranscriptSegmentMapper struct{}

func NewTranscriptSegmentMapper() *TranscriptSegmentMapper {
	return &TranscriptSegmentMapper{}
}

func (m *TranscriptSegmentMapper) ToEntity(e *model.TranscriptSegment) *entity.TranscriptSegment {
	if e == nil {
		return nil
	}
	return &entity.TranscriptSegment{
		Id:            e.Id,
		MeetingId:     e.MeetingId,
		SegmentIndex:  e.SegmentIndex,
		Speaker:       e.Speaker,
		StartSec:      e.StartSec,
		EndSec:        e.EndSec,
		OriginalText:  e.OriginalText,
		CorrectedText: e.CorrectedText,
		CreatedAt:     e.CreatedAt,
	}
}

func (m *TranscriptSegmentMapper) ToModel(e *entity.TranscriptSegment) *model.TranscriptSegment {
	if e == nil {
		return nil
	}
	return &model.TranscriptSegment{
		Id:            e.Id,
		MeetingId:     e.MeetingId,
		SegmentIndex:  e.SegmentIndex,
		Speaker:       e.Speaker,
		StartSec:      e.StartSec,
		EndSec:        e.EndSec,
		OriginalText:  e.OriginalText,
		CorrectedText: e.CorrectedText,
		CreatedAt:     e.CreatedAt,
	}
}

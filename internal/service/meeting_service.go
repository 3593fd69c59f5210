package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/internal/dto"
	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/pkg/serverutils"
	"ai-minutes-be/internal/repository/specification"
	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/pkg/audio"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMeetingService interface {
	Upload(ctx context.Context, topic string, keywords []string, filename string, file io.Reader) (*dto.UploadMeetingResponse, error)
	List(ctx context.Context) ([]*dto.GetMeetingListResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.GetMeetingResponse, error)
	GetTranscript(ctx context.Context, id uuid.UUID) (*dto.GetTranscriptResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reprocess(ctx context.Context, id uuid.UUID) (*dto.ReprocessMeetingResponse, error)
}

type meetingService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	uploadsDir       string
}

func NewMeetingService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	uploadsDir string,
) IMeetingService {
	return &meetingService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		uploadsDir:       uploadsDir,
	}
}

func (s *meetingService) Upload(ctx context.Context, topic string, keywords []string, filename string, file io.Reader) (*dto.UploadMeetingResponse, error) {
	if !audio.ValidateAudioFormat(filename) {
		return nil, serverutils.NewAPIError(fiber.StatusBadRequest, "Unsupported audio format")
	}

	meetingId := uuid.New()

	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	// Prefix with the meeting id so repeated uploads of the same file
	// never collide.
	audioPath := filepath.Join(s.uploadsDir, fmt.Sprintf("%s_%s", meetingId.String(), filepath.Base(filename)))
	dst, err := os.Create(audioPath)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(audioPath)
		return nil, fmt.Errorf("save upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	meeting := entity.Meeting{
		Id:         meetingId,
		Topic:      topic,
		SourceFile: filepath.Base(filename),
		AudioPath:  audioPath,
		Status:     constant.MeetingStatusUploaded,
		Keywords:   keywords,
		CreatedAt:  time.Now(),
	}
	if err := uow.MeetingRepository().Create(ctx, &meeting); err != nil {
		return nil, err
	}

	if err := s.publishUploaded(ctx, meeting.Id); err != nil {
		return nil, err
	}

	return &dto.UploadMeetingResponse{
		Id:     meeting.Id,
		Status: meeting.Status,
	}, nil
}

func (s *meetingService) List(ctx context.Context) ([]*dto.GetMeetingListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	meetings, err := uow.MeetingRepository().FindAll(ctx,
		specification.NotDeleted{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetMeetingListResponse, len(meetings))
	for i, m := range meetings {
		res[i] = &dto.GetMeetingListResponse{
			Id:         m.Id,
			Topic:      m.Topic,
			SourceFile: m.SourceFile,
			Status:     m.Status,
			CreatedAt:  m.CreatedAt,
		}
	}
	return res, nil
}

func (s *meetingService) Show(ctx context.Context, id uuid.UUID) (*dto.GetMeetingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	meeting, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Meeting not found")
	}

	return &dto.GetMeetingResponse{
		Id:             meeting.Id,
		Topic:          meeting.Topic,
		SourceFile:     meeting.SourceFile,
		Status:         meeting.Status,
		CollectionBase: meeting.CollectionBase,
		Keywords:       meeting.Keywords,
		Summary:        meeting.Summary,
		ErrorMessage:   meeting.ErrorMessage,
		CreatedAt:      meeting.CreatedAt,
		UpdatedAt:      meeting.UpdatedAt,
	}, nil
}

func (s *meetingService) GetTranscript(ctx context.Context, id uuid.UUID) (*dto.GetTranscriptResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	meeting, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Meeting not found")
	}

	segments, err := uow.TranscriptSegmentRepository().FindAll(ctx,
		specification.ByMeetingID{MeetingID: id},
		specification.OrderBy{Field: "segment_index"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.GetTranscriptResponse{
		MeetingId: id,
		Segments:  make([]dto.TranscriptSegmentDTO, len(segments)),
	}
	for i, seg := range segments {
		res.Segments[i] = dto.TranscriptSegmentDTO{
			SegmentIndex:  seg.SegmentIndex,
			Speaker:       seg.Speaker,
			StartSec:      seg.StartSec,
			EndSec:        seg.EndSec,
			OriginalText:  seg.OriginalText,
			CorrectedText: seg.CorrectedText,
		}
	}
	return res, nil
}

func (s *meetingService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	meeting, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if meeting == nil {
		return serverutils.NewAPIError(fiber.StatusNotFound, "Meeting not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentEmbeddingRepository().DeleteByMeetingId(ctx, id); err != nil {
		return err
	}
	if err := uow.TranscriptSegmentRepository().DeleteByMeetingId(ctx, id); err != nil {
		return err
	}
	if err := uow.MeetingRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

// Reprocess re-queues a meeting whose pipeline already finished or
// failed. The stored audio file must still exist.
func (s *meetingService) Reprocess(ctx context.Context, id uuid.UUID) (*dto.ReprocessMeetingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	meeting, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Meeting not found")
	}
	if meeting.Status != constant.MeetingStatusDone && meeting.Status != constant.MeetingStatusFailed {
		return nil, serverutils.NewAPIError(fiber.StatusConflict, "Meeting is still being processed")
	}
	if _, err := os.Stat(meeting.AudioPath); err != nil {
		return nil, serverutils.NewAPIError(fiber.StatusConflict, "Original audio file is no longer available")
	}

	meeting.Status = constant.MeetingStatusUploaded
	meeting.ErrorMessage = ""
	if err := uow.MeetingRepository().Update(ctx, meeting); err != nil {
		return nil, err
	}

	if err := s.publishUploaded(ctx, meeting.Id); err != nil {
		return nil, err
	}

	return &dto.ReprocessMeetingResponse{
		Id:     meeting.Id,
		Status: meeting.Status,
	}, nil
}

func (s *meetingService) publishUploaded(ctx context.Context, meetingId uuid.UUID) error {
	msgJson, err := json.Marshal(dto.PublishMeetingUploadedMessage{MeetingId: meetingId})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

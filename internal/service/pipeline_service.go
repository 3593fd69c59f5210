package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-minutes-be/internal/config"
	"ai-minutes-be/internal/constant"
	"ai-minutes-be/internal/dto"
	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/pkg/mailer"
	"ai-minutes-be/internal/repository/specification"
	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/internal/websocket"
	"ai-minutes-be/pkg/audio"
	"ai-minutes-be/pkg/diarization"
	"ai-minutes-be/pkg/events"
	"ai-minutes-be/pkg/minutes"
	pktNats "ai-minutes-be/pkg/nats"
	"ai-minutes-be/pkg/stt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPipelineService interface {
	Consume(ctx context.Context) error
}

type pipelineService struct {
	pubSub    *gochannel.GoChannel
	topicName string

	uowFactory unitofwork.RepositoryFactory

	diarizer         *diarization.Client
	transcriber      stt.Transcriber
	corrector        *minutes.Corrector
	keywordExtractor *minutes.KeywordExtractor
	summarizer       *minutes.Summarizer

	indexPublisher IPublisherService
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	notifyEmail    string
	hub            *websocket.Hub

	cfg config.PipelineConfig
}

func NewPipelineService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	diarizer *diarization.Client,
	transcriber stt.Transcriber,
	corrector *minutes.Corrector,
	keywordExtractor *minutes.KeywordExtractor,
	summarizer *minutes.Summarizer,
	indexPublisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	notifyEmail string,
	hub *websocket.Hub,
	cfg config.PipelineConfig,
) IPipelineService {
	return &pipelineService{
		pubSub:           pubSub,
		topicName:        topicName,
		uowFactory:       uowFactory,
		diarizer:         diarizer,
		transcriber:      transcriber,
		corrector:        corrector,
		keywordExtractor: keywordExtractor,
		summarizer:       summarizer,
		indexPublisher:   indexPublisher,
		eventPublisher:   eventPublisher,
		emailService:     emailService,
		notifyEmail:      notifyEmail,
		hub:              hub,
		cfg:              cfg,
	}
}

func (ps *pipelineService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, ps.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ps *pipelineService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishMeetingUploadedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal pipeline message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Pipeline start for meeting %s", payload.MeetingId)

	uow := ps.uowFactory.NewUnitOfWork(ctx)
	meeting, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: payload.MeetingId})
	if err != nil {
		log.Printf("[ERROR] Failed to load meeting %s: %v", payload.MeetingId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if meeting == nil {
		log.Printf("[ERROR] Meeting not found: %s", payload.MeetingId)
		msg.Ack() // Meeting deleted? Ack.
		return
	}

	if err := ps.run(ctx, meeting); err != nil {
		log.Printf("[ERROR] Pipeline failed for meeting %s: %v", meeting.Id, err)
		ps.recordFailure(ctx, meeting, err)
	}

	// Failures are recorded on the meeting row and surfaced to the user,
	// who can re-queue via Reprocess. Either way the message is consumed.
	msg.Ack()
}

func (ps *pipelineService) run(ctx context.Context, meeting *entity.Meeting) error {
	var tempFiles []string
	defer func() {
		for _, f := range tempFiles {
			os.Remove(f)
		}
	}()

	// 1. Diarize
	ps.progress(ctx, meeting, constant.MeetingStatusDiarizing, "Separating speakers")

	normalized, err := audio.NormalizeAudio(ctx, meeting.AudioPath, ps.cfg.TempDir)
	if err != nil {
		return fmt.Errorf("normalize audio: %w", err)
	}
	tempFiles = append(tempFiles, normalized)

	turns, err := ps.diarizer.Diarize(ctx, normalized)
	if err != nil {
		return fmt.Errorf("diarize: %w", err)
	}

	kept := make([]diarization.Turn, 0, len(turns))
	for _, t := range turns {
		// Sub-second turns are diarization noise, not speech.
		if t.EndSec-t.StartSec < ps.cfg.MinSegmentSec {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return fmt.Errorf("no usable speech segments in recording")
	}

	// 2. Transcribe segments in parallel
	ps.progress(ctx, meeting, constant.MeetingStatusTranscribing, fmt.Sprintf("Transcribing %d segments", len(kept)))

	promptHint := fmt.Sprintf(constant.SttPromptTemplate, meeting.Topic, strings.Join(meeting.Keywords, ", "))
	jobs := make([]stt.SegmentJob, len(kept))
	for i, t := range kept {
		segPath, err := audio.ExtractSegment(ctx, normalized, ps.cfg.TempDir, i, t.StartSec, t.EndSec)
		if err != nil {
			return fmt.Errorf("extract segment %d: %w", i, err)
		}
		tempFiles = append(tempFiles, segPath)
		jobs[i] = stt.SegmentJob{Index: i, AudioPath: segPath, PromptHint: promptHint}
	}

	texts := stt.TranscribePool(ctx, ps.transcriber, jobs, ps.cfg.SttWorkers, func(job stt.SegmentJob, err error) {
		log.Printf("[WARN] STT failed for segment %d of meeting %s: %v", job.Index, meeting.Id, err)
	})

	original := make([]minutes.Segment, 0, len(kept))
	for i, t := range kept {
		text := strings.TrimSpace(texts[i])
		if text == "" {
			continue
		}
		original = append(original, minutes.Segment{
			Speaker:  t.Speaker,
			StartSec: t.StartSec,
			EndSec:   t.EndSec,
			Text:     text,
		})
	}
	if len(original) == 0 {
		return fmt.Errorf("transcription produced no text")
	}

	// 3. Correct transcript
	ps.progress(ctx, meeting, constant.MeetingStatusCorrecting, "Correcting transcript")

	lines := make([]minutes.Line, len(original))
	for i, seg := range original {
		lines[i] = minutes.Line{Speaker: seg.Speaker, Text: seg.Text}
	}
	correctedLines := ps.corrector.Correct(ctx, meeting.Topic, meeting.Keywords, lines)

	corrected := make([]minutes.Segment, len(original))
	for i, seg := range original {
		corrected[i] = minutes.Segment{
			Speaker:  seg.Speaker,
			StartSec: seg.StartSec,
			EndSec:   seg.EndSec,
			Text:     correctedLines[i].Text,
		}
	}
	transcript := minutes.PlainTranscript(corrected)

	// 4. Keywords and summary
	ps.progress(ctx, meeting, constant.MeetingStatusSummarizing, "Extracting keywords and summary")

	keywords := ps.keywordExtractor.Extract(ctx, meeting.Topic, transcript)
	if len(keywords) == 0 {
		keywords = meeting.Keywords
	}

	summary, err := ps.summarizer.Summarize(ctx, meeting.Topic, keywords, transcript)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	// 5. Persist artifacts
	baseName := strings.TrimSuffix(meeting.SourceFile, filepath.Ext(meeting.SourceFile))
	files, err := minutes.SaveResults(ps.cfg.ResultsDir, baseName, meeting.Topic, keywords, original, corrected, summary)
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}

	collectionBase := collectionBaseFor(baseName, meeting.Id)

	segments := make([]*entity.TranscriptSegment, len(original))
	for i := range original {
		segments[i] = &entity.TranscriptSegment{
			Id:            uuid.New(),
			MeetingId:     meeting.Id,
			SegmentIndex:  i,
			Speaker:       original[i].Speaker,
			StartSec:      original[i].StartSec,
			EndSec:        original[i].EndSec,
			OriginalText:  original[i].Text,
			CorrectedText: corrected[i].Text,
			CreatedAt:     time.Now(),
		}
	}

	meeting.Keywords = keywords
	meeting.Summary = summary
	meeting.ResultsPath = files.Dir
	meeting.CollectionBase = collectionBase
	meeting.Status = constant.MeetingStatusIndexing
	meeting.ErrorMessage = ""

	uow := ps.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.TranscriptSegmentRepository().DeleteByMeetingId(ctx, meeting.Id); err != nil {
		return err
	}
	if err := uow.TranscriptSegmentRepository().CreateBulk(ctx, segments); err != nil {
		return err
	}
	if err := uow.MeetingRepository().Update(ctx, meeting); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// 6. Queue indexing for both granularities
	ps.broadcast(meeting, constant.MeetingStatusIndexing, "Indexing transcript and summary")

	if err := ps.publishIndex(ctx, meeting.Id, collectionBase+"_full", transcript); err != nil {
		return fmt.Errorf("queue full index: %w", err)
	}
	if err := ps.publishIndex(ctx, meeting.Id, collectionBase+"_summary", summary); err != nil {
		return fmt.Errorf("queue summary index: %w", err)
	}

	// Embedding continues asynchronously; the chatbot can use the
	// collections as soon as the indexer commits them.
	ps.progress(ctx, meeting, constant.MeetingStatusDone, "Minutes ready")
	ps.notifySuccess(ctx, meeting)

	log.Printf("[SUCCESS] Pipeline finished for meeting %s (%d segments)", meeting.Id, len(segments))
	return nil
}

func (ps *pipelineService) publishIndex(ctx context.Context, meetingId uuid.UUID, collection, text string) error {
	msgJson, err := json.Marshal(dto.PublishIndexDocumentMessage{
		MeetingId:  meetingId,
		Collection: collection,
		Text:       text,
	})
	if err != nil {
		return err
	}
	return ps.indexPublisher.Publish(ctx, msgJson)
}

// progress persists the new status and pushes it over the websocket hub.
func (ps *pipelineService) progress(ctx context.Context, meeting *entity.Meeting, status, detail string) {
	meeting.Status = status
	uow := ps.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MeetingRepository().Update(ctx, meeting); err != nil {
		log.Printf("[WARN] Failed to persist status %s for meeting %s: %v", status, meeting.Id, err)
	}
	ps.broadcast(meeting, status, detail)
}

func (ps *pipelineService) broadcast(meeting *entity.Meeting, status, detail string) {
	if ps.hub == nil {
		return
	}
	ps.hub.Broadcast(dto.PipelineProgressEvent{
		MeetingId: meeting.Id,
		Stage:     status,
		Status:    "in_progress",
		Detail:    detail,
	})
}

func (ps *pipelineService) recordFailure(ctx context.Context, meeting *entity.Meeting, cause error) {
	meeting.Status = constant.MeetingStatusFailed
	meeting.ErrorMessage = cause.Error()

	uow := ps.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MeetingRepository().Update(ctx, meeting); err != nil {
		log.Printf("[ERROR] Failed to persist failure for meeting %s: %v", meeting.Id, err)
	}

	if ps.hub != nil {
		ps.hub.Broadcast(dto.PipelineProgressEvent{
			MeetingId: meeting.Id,
			Stage:     constant.MeetingStatusFailed,
			Status:    "failed",
			Detail:    cause.Error(),
		})
	}

	if ps.eventPublisher != nil {
		evt := events.NewMeetingFailed(meeting.Id.String(), cause.Error())
		if err := ps.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish MEETING_FAILED event: %v\n", err)
		}
	}

	if ps.emailService != nil && ps.notifyEmail != "" {
		// Mail is auxiliary, the error is already logged by the mailer.
		_ = ps.emailService.SendProcessingFailed(ps.notifyEmail, meeting.Topic, cause.Error())
	}
}

func (ps *pipelineService) notifySuccess(ctx context.Context, meeting *entity.Meeting) {
	if ps.eventPublisher != nil {
		evt := events.NewMeetingProcessed(meeting.Id.String(), meeting.Topic, meeting.ResultsPath)
		if err := ps.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish MEETING_PROCESSED event: %v\n", err)
		}
	}

	if ps.emailService != nil && ps.notifyEmail != "" {
		_ = ps.emailService.SendMinutesReady(ps.notifyEmail, meeting.Topic, meeting.ResultsPath)
	}
}

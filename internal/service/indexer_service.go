package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-minutes-be/internal/config"
	"ai-minutes-be/internal/dto"
	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/pkg/embedding"
	"ai-minutes-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

type indexerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	cfg               config.PipelineConfig
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	cfg config.PipelineConfig,
) IIndexerService {
	return &indexerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		cfg:               cfg,
	}
}

func (is *indexerService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if payload.Collection == "" || payload.Text == "" {
		log.Printf("[ERROR] Index message missing collection or text for meeting %s", payload.MeetingId)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Indexing collection %s (content length: %d)", payload.Collection, len(payload.Text))

	chunks := utils.SplitText(payload.Text, is.cfg.ChunkSize, is.cfg.ChunkOverlap)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.DocumentEmbedding
	for i, chunk := range chunks {
		res, err := is.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of %s: %v", i, payload.Collection, err)
			msg.Nack() // Nack for retriable errors
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.DocumentEmbedding{
			Id:             uuid.New(),
			Collection:     payload.Collection,
			Document:       chunk,
			ChunkIndex:     i,
			EmbeddingValue: res.Embedding.Values,
			MeetingId:      payload.MeetingId,
			CreatedAt:      time.Now(),
		})
	}

	uow := is.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Replace the collection wholesale so a re-run never mixes stale
	// chunks with fresh ones.
	if err := uow.DocumentEmbeddingRepository().DeleteByCollection(ctx, payload.Collection); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings for %s: %v", payload.Collection, err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create bulk embeddings for %s: %v", payload.Collection, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Indexed %d chunks into %s", len(newEmbeddings), payload.Collection)
	msg.Ack()
}

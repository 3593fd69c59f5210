package service

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/internal/dto"
	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/pkg/logger"
	"ai-minutes-be/internal/pkg/serverutils"
	"ai-minutes-be/internal/repository/memory"
	"ai-minutes-be/internal/repository/specification"
	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/pkg/llm"
	"ai-minutes-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const chatErrorReply = "Sorry, something went wrong while answering. Please try again."

type IChatbotService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

type chatbotService struct {
	uowFactory   unitofwork.RepositoryFactory
	engine       *rag.Engine
	sessionCache *memory.SessionCache
	llmLogger    *log.Logger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	retriever rag.Retriever,
	ragCfg rag.Config,
	sessionCache *memory.SessionCache,
	sysLogger logger.ILogger,
) IChatbotService {
	engine := rag.NewEngine(
		rag.NewLLMRouter(llmProvider),
		retriever,
		rag.NewLLMGrader(llmProvider),
		rag.NewLLMGenerator(llmProvider),
		rag.NewLLMValidator(llmProvider),
		ragCfg,
		sysLogger,
	)

	return &chatbotService{
		uowFactory:   uowFactory,
		engine:       engine,
		sessionCache: sessionCache,
		llmLogger:    initLLMLogger(),
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *chatbotService) CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	meeting, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: request.MeetingId})
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Meeting not found")
	}
	if meeting.CollectionBase == "" {
		return nil, serverutils.NewAPIError(fiber.StatusConflict, "Meeting has not been processed yet")
	}

	now := time.Now()
	title := request.Title
	if title == "" {
		title = "Unnamed session"
	}

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		MeetingId: meeting.Id,
		Title:     title,
		CreatedAt: now,
	}

	greeting := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          "Hi, ask me anything about this meeting.",
		Role:          constant.ChatMessageRoleAssistant,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &greeting); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	cs.sessionCache.Save(&memory.CachedSession{
		SessionId:      chatSession.Id,
		UserId:         userId,
		MeetingId:      meeting.Id,
		Title:          chatSession.Title,
		CollectionBase: meeting.CollectionBase,
	})

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

func (cs *chatbotService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.NotDeleted{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllSessionsResponse, len(sessions))
	for i, s := range sessions {
		res[i] = &dto.GetAllSessionsResponse{
			Id:        s.Id,
			MeetingId: s.MeetingId,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	}
	return res, nil
}

func (cs *chatbotService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	cached, err := cs.resolveSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: cached.SessionId},
		specification.NotDeleted{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetChatHistoryResponse, len(messages))
	for i, m := range messages {
		res[i] = &dto.GetChatHistoryResponse{
			Id:         m.Id,
			Role:       m.Role,
			Chat:       m.Chat,
			Unverified: m.Unverified,
			Datasource: m.Datasource,
			CreatedAt:  m.CreatedAt,
		}
	}
	return res, nil
}

func (cs *chatbotService) SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	cached, err := cs.resolveSession(ctx, userId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          request.Chat,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: cached.SessionId,
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}

	cs.llmLogger.Printf("session=%s question=%q", cached.SessionId, request.Chat)

	reply := entity.ChatMessage{
		Id:            uuid.New(),
		Role:          constant.ChatMessageRoleAssistant,
		ChatSessionId: cached.SessionId,
		CreatedAt:     now.Add(1 * time.Second),
	}

	result, err := cs.engine.Answer(ctx, request.Chat, cached.CollectionBase)
	if err != nil {
		// The user message is already persisted; answer with a visible
		// error instead of failing the request.
		cs.llmLogger.Printf("session=%s answer failed: %v", cached.SessionId, err)
		reply.Chat = chatErrorReply
	} else {
		cs.llmLogger.Printf("session=%s datasource=%s retries=%d unverified=%t", cached.SessionId, result.Datasource, result.Retries, result.Unverified)
		reply.Chat = result.Answer
		reply.Unverified = result.Unverified
		reply.Datasource = result.Datasource
	}

	if err := uow.ChatMessageRepository().Create(ctx, &reply); err != nil {
		return nil, err
	}

	if cached.Title == "Unnamed session" {
		if err := cs.renameSession(ctx, uow, cached, request.Chat); err != nil {
			log.Printf("[WARN] Failed to rename session %s: %v", cached.SessionId, err)
		}
	}

	return &dto.SendChatResponse{
		ChatSessionId:    cached.SessionId,
		ChatSessionTitle: cached.Title,
		Sent: &dto.SendChatResponseChat{
			Id:        userMessage.Id,
			Chat:      userMessage.Chat,
			Role:      userMessage.Role,
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:         reply.Id,
			Chat:       reply.Chat,
			Role:       reply.Role,
			Unverified: reply.Unverified,
			Datasource: reply.Datasource,
			CreatedAt:  reply.CreatedAt,
		},
	}, nil
}

func (cs *chatbotService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	cached, err := cs.resolveSession(ctx, userId, request.ChatSessionId)
	if err != nil {
		return err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, cached.SessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, cached.SessionId); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	cs.sessionCache.Delete(cached.SessionId)
	return nil
}

// resolveSession loads the session with its meeting collection, going to
// the database only on a cache miss. Ownership is checked either way.
func (cs *chatbotService) resolveSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*memory.CachedSession, error) {
	if cached, found := cs.sessionCache.Get(sessionId); found {
		if cached.UserId != userId {
			return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Chat session not found")
		}
		return cached, nil
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Chat session not found")
	}

	meeting, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: session.MeetingId})
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, serverutils.NewAPIError(fiber.StatusNotFound, "Meeting for this session no longer exists")
	}

	cached := &memory.CachedSession{
		SessionId:      session.Id,
		UserId:         session.UserId,
		MeetingId:      session.MeetingId,
		Title:          session.Title,
		CollectionBase: meeting.CollectionBase,
	}
	cs.sessionCache.Save(cached)
	return cached, nil
}

func (cs *chatbotService) renameSession(ctx context.Context, uow unitofwork.UnitOfWork, cached *memory.CachedSession, firstMessage string) error {
	title := firstMessage
	if len([]rune(title)) > 50 {
		title = string([]rune(title)[:50])
	}

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: cached.SessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	session.Title = title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	cached.Title = title
	cs.sessionCache.Save(cached)
	return nil
}

package service

import (
	"context"
	"testing"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/internal/dto"
	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/pkg/logger"
	"ai-minutes-be/internal/repository/contract"
	"ai-minutes-be/internal/repository/memory"
	"ai-minutes-be/internal/repository/specification"
	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/pkg/llm"
	"ai-minutes-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is shared in-memory state behind the fake repositories.
type fakeStore struct {
	meetings []*entity.Meeting
	sessions []*entity.ChatSession
	messages []*entity.ChatMessage
}

type fakeUowFactory struct {
	store *fakeStore
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) MeetingRepository() contract.MeetingRepository {
	return &fakeMeetingRepo{store: u.store}
}
func (u *fakeUow) TranscriptSegmentRepository() contract.TranscriptSegmentRepository {
	panic("not used in chatbot tests")
}
func (u *fakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	panic("not used in chatbot tests")
}
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

// matchID pulls the target id out of a spec list, if present.
func matchID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

func matchUserID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if byUser, ok := s.(specification.ByUserID); ok {
			return byUser.UserID, true
		}
	}
	return uuid.Nil, false
}

type fakeMeetingRepo struct {
	store *fakeStore
}

func (r *fakeMeetingRepo) Create(ctx context.Context, meeting *entity.Meeting) error {
	r.store.meetings = append(r.store.meetings, meeting)
	return nil
}
func (r *fakeMeetingRepo) Update(ctx context.Context, meeting *entity.Meeting) error { return nil }
func (r *fakeMeetingRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (r *fakeMeetingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Meeting, error) {
	id, _ := matchID(specs)
	for _, m := range r.store.meetings {
		if m.Id == id {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeMeetingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Meeting, error) {
	return r.store.meetings, nil
}
func (r *fakeMeetingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.meetings)), nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.sessions = append(r.store.sessions, session)
	return nil
}
func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	for i, s := range r.store.sessions {
		if s.Id == session.Id {
			r.store.sessions[i] = session
		}
	}
	return nil
}
func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.sessions[:0]
	for _, s := range r.store.sessions {
		if s.Id != id {
			kept = append(kept, s)
		}
	}
	r.store.sessions = kept
	return nil
}
func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	id, _ := matchID(specs)
	userId, hasUser := matchUserID(specs)
	for _, s := range r.store.sessions {
		if s.Id != id {
			continue
		}
		if hasUser && s.UserId != userId {
			continue
		}
		return s, nil
	}
	return nil, nil
}
func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	userId, hasUser := matchUserID(specs)
	var res []*entity.ChatSession
	for _, s := range r.store.sessions {
		if hasUser && s.UserId != userId {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.messages = append(r.store.messages, message)
	return nil
}
func (r *fakeMessageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}
func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return r.store.messages, nil
}
func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.messages)), nil
}

// scriptedLLM replays canned responses in call order.
type scriptedLLM struct {
	responses []string
	calls     int
	err       error
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.calls >= len(s.responses) {
		return "", assert.AnError
	}
	res := s.responses[s.calls]
	s.calls++
	return res, nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type staticRetriever struct {
	docs []rag.Document
}

func (r *staticRetriever) Retrieve(ctx context.Context, collection, question string, topK int) ([]rag.Document, error) {
	return r.docs, nil
}

func newChatbotFixture(t *testing.T, provider llm.LLMProvider, retriever rag.Retriever) (IChatbotService, *fakeStore, *entity.Meeting) {
	t.Helper()

	store := &fakeStore{}
	meeting := &entity.Meeting{
		Id:             uuid.New(),
		Topic:          "Sprint Planning",
		Status:         constant.MeetingStatusDone,
		CollectionBase: "sprint_planning",
	}
	store.meetings = append(store.meetings, meeting)

	svc := NewChatbotService(
		&fakeUowFactory{store: store},
		provider,
		retriever,
		rag.Config{},
		memory.NewSessionCache(),
		logger.NewIsolatedLogger(t.TempDir()+"/test.log"),
	)
	return svc, store, meeting
}

func TestSendChatGroundedAnswer(t *testing.T) {
	provider := &scriptedLLM{responses: []string{
		`{"target_db": "summary_db", "confidence": 0.9, "rationale": "overview question"}`,
		`{"relevant": "yes", "reason": "mentions the sprint goal"}`,
		`The sprint goal is shipping the beta.`,
		`{"grounded": true, "missing_evidence": [], "suggested_fix": ""}`,
	}}
	retriever := &staticRetriever{docs: []rag.Document{{Content: "Goal: ship the beta."}}}
	svc, store, meeting := newChatbotFixture(t, provider, retriever)

	userId := uuid.New()
	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{MeetingId: meeting.Id})
	require.NoError(t, err)

	res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ChatSessionId: created.Id,
		Chat:          "What is the sprint goal?",
	})
	require.NoError(t, err)

	assert.Equal(t, "The sprint goal is shipping the beta.", res.Reply.Chat)
	assert.False(t, res.Reply.Unverified)
	assert.Equal(t, "summary_db", res.Reply.Datasource)

	// Greeting + user message + assistant reply
	assert.Len(t, store.messages, 3)
	// First question becomes the session title
	assert.Equal(t, "What is the sprint goal?", store.sessions[0].Title)
}

func TestSendChatEngineFailureYieldsVisibleError(t *testing.T) {
	provider := &scriptedLLM{err: assert.AnError}
	svc, store, meeting := newChatbotFixture(t, provider, &staticRetriever{})

	userId := uuid.New()
	created, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{MeetingId: meeting.Id})
	require.NoError(t, err)

	res, err := svc.SendChat(context.Background(), userId, &dto.SendChatRequest{
		ChatSessionId: created.Id,
		Chat:          "Anything?",
	})
	require.NoError(t, err)

	assert.Equal(t, chatErrorReply, res.Reply.Chat)
	// User message is kept even though the engine failed
	assert.Len(t, store.messages, 3)
}

func TestSendChatRejectsForeignSession(t *testing.T) {
	provider := &scriptedLLM{}
	svc, _, meeting := newChatbotFixture(t, provider, &staticRetriever{})

	owner := uuid.New()
	created, err := svc.CreateSession(context.Background(), owner, &dto.CreateSessionRequest{MeetingId: meeting.Id})
	require.NoError(t, err)

	_, err = svc.SendChat(context.Background(), uuid.New(), &dto.SendChatRequest{
		ChatSessionId: created.Id,
		Chat:          "Hello",
	})
	assert.Error(t, err)
}

func TestCreateSessionRequiresProcessedMeeting(t *testing.T) {
	provider := &scriptedLLM{}
	svc, store, _ := newChatbotFixture(t, provider, &staticRetriever{})

	unprocessed := &entity.Meeting{
		Id:     uuid.New(),
		Topic:  "Raw Upload",
		Status: constant.MeetingStatusUploaded,
	}
	store.meetings = append(store.meetings, unprocessed)

	_, err := svc.CreateSession(context.Background(), uuid.New(), &dto.CreateSessionRequest{MeetingId: unprocessed.Id})
	assert.Error(t, err)
}

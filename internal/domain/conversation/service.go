package conversation

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
	"github.com/yanqian/outdoor-planner/internal/domain/report"
	"github.com/yanqian/outdoor-planner/internal/observability"
	apperrors "github.com/yanqian/outdoor-planner/pkg/errors"
)

// Service is the dialogue controller: it classifies each user turn
// according to the current stage, drives the report pipeline, and
// appends the bot's replies to the transcript.
type Service interface {
	Start(ctx context.Context) (Conversation, error)
	HandleTurn(ctx context.Context, convID, text string) ([]Message, error)
	QuickReply(ctx context.Context, convID string, act activity.Type) ([]Message, error)
	Reset(ctx context.Context, convID string) ([]Message, error)
	History(ctx context.Context, convID string) ([]Message, error)
}

// Reporter runs the weather risk pipeline once the three answers are
// collected.
type Reporter interface {
	Generate(ctx context.Context, act activity.Type, locationText, dateText string) (report.Report, error)
}

// Config tunes the dialogue controller.
type Config struct {
	// HistoryLimit caps the transcript length kept per conversation.
	// Zero keeps everything.
	HistoryLimit int
}

type service struct {
	cfg      Config
	store    Store
	reporter Reporter
	metrics  *observability.Metrics
	clock    clockwork.Clock
	logger   *slog.Logger

	// pick selects among equivalent reply templates; injectable so tests
	// stay deterministic.
	pick func(n int) int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService wires up the dialogue controller.
func NewService(cfg Config, store Store, reporter Reporter, metrics *observability.Metrics, clock clockwork.Clock, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		store:    store,
		reporter: reporter,
		metrics:  metrics,
		clock:    clock,
		logger:   logger.With("component", "conversation.service"),
		pick:     rand.IntN,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *service) Start(ctx context.Context) (Conversation, error) {
	conv := Conversation{
		ID:       uuid.NewString(),
		Messages: []Message{s.botMessage(greetingText())},
	}
	if err := s.store.Save(ctx, conv); err != nil {
		return Conversation{}, apperrors.Wrap("store_error", "failed to create conversation", err)
	}
	s.logger.Info("conversation started", "conversation_id", conv.ID)
	return conv, nil
}

func (s *service) HandleTurn(ctx context.Context, convID, text string) ([]Message, error) {
	unlock := s.lockConversation(convID)
	defer unlock()

	conv, err := s.load(ctx, convID)
	if err != nil {
		return nil, err
	}

	conv.Messages = append(conv.Messages, s.userMessage(text))

	var replies []Message
	switch conv.State.Stage {
	case StageAwaitingActivity:
		replies = s.classifyActivity(&conv, text)
	case StageAwaitingLocation:
		conv.State.LocationText = text
		conv.State.Stage = StageAwaitingDate
		replies = []Message{s.botMessage(locationAckText(s.pick, text))}
		s.metrics.TurnsProcessed.WithLabelValues(StageAwaitingLocation.String(), "advanced").Inc()
	case StageAwaitingDate:
		conv.State.DateText = text
		replies = s.runReport(ctx, &conv)
	}

	conv.Messages = append(conv.Messages, replies...)
	s.trimHistory(&conv)
	if err := s.store.Save(ctx, conv); err != nil {
		return nil, apperrors.Wrap("store_error", "failed to save conversation", err)
	}
	return replies, nil
}

func (s *service) QuickReply(ctx context.Context, convID string, act activity.Type) ([]Message, error) {
	if !act.Valid() {
		return nil, apperrors.Wrap("invalid_input", "unknown activity", nil)
	}

	unlock := s.lockConversation(convID)
	defer unlock()

	conv, err := s.load(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv.State.Stage != StageAwaitingActivity {
		// Quick replies only shortcut the first question.
		return nil, apperrors.Wrap("invalid_input", "activity already selected", nil)
	}

	conv.Messages = append(conv.Messages, s.userMessage(act.Label()))
	conv.State.Activity = act
	conv.State.Stage = StageAwaitingLocation
	s.metrics.TurnsProcessed.WithLabelValues(StageAwaitingActivity.String(), "advanced").Inc()

	replies := []Message{s.botMessage(activityAckText(s.pick, act))}
	conv.Messages = append(conv.Messages, replies...)
	s.trimHistory(&conv)
	if err := s.store.Save(ctx, conv); err != nil {
		return nil, apperrors.Wrap("store_error", "failed to save conversation", err)
	}
	return replies, nil
}

func (s *service) Reset(ctx context.Context, convID string) ([]Message, error) {
	unlock := s.lockConversation(convID)
	defer unlock()

	conv, err := s.load(ctx, convID)
	if err != nil {
		return nil, err
	}

	conv.State = State{}
	replies := []Message{s.botMessage(greetingText())}
	conv.Messages = append(conv.Messages, replies...)
	if err := s.store.Save(ctx, conv); err != nil {
		return nil, apperrors.Wrap("store_error", "failed to save conversation", err)
	}
	return replies, nil
}

func (s *service) History(ctx context.Context, convID string) ([]Message, error) {
	conv, err := s.load(ctx, convID)
	if err != nil {
		return nil, err
	}
	return conv.Messages, nil
}

func (s *service) classifyActivity(conv *Conversation, text string) []Message {
	act, ok := activity.Classify(text)
	if !ok {
		s.metrics.TurnsProcessed.WithLabelValues(StageAwaitingActivity.String(), "reprompt").Inc()
		return []Message{s.botMessage(clarificationText())}
	}
	conv.State.Activity = act
	conv.State.Stage = StageAwaitingLocation
	s.metrics.TurnsProcessed.WithLabelValues(StageAwaitingActivity.String(), "advanced").Inc()
	return []Message{s.botMessage(activityAckText(s.pick, act))}
}

// runReport drives the pipeline and resets the dialogue regardless of the
// outcome: a failed report never leaves the conversation stuck mid-flow.
func (s *service) runReport(ctx context.Context, conv *Conversation) []Message {
	replies := []Message{s.botMessage(analyzingText)}

	rep, err := s.reporter.Generate(ctx, conv.State.Activity, conv.State.LocationText, conv.State.DateText)
	if err != nil {
		s.logger.Error("report pipeline failed", "conversation_id", conv.ID, "error", err)
		s.metrics.TurnsProcessed.WithLabelValues(StageAwaitingDate.String(), "error").Inc()
		conv.State = State{}
		return append(replies, s.botMessage(apologyText))
	}

	reportMsg := s.botMessage(rep.Text)
	reportMsg.Risks = rep.Risks
	reportMsg.Sources = rep.Sources

	s.metrics.TurnsProcessed.WithLabelValues(StageAwaitingDate.String(), "report").Inc()
	conv.State = State{}
	return append(replies, reportMsg, s.botMessage(invitationText))
}

func (s *service) load(ctx context.Context, convID string) (Conversation, error) {
	conv, ok, err := s.store.Get(ctx, convID)
	if err != nil {
		return Conversation{}, apperrors.Wrap("store_error", "failed to load conversation", err)
	}
	if !ok {
		return Conversation{}, apperrors.Wrap("conversation_not_found", "conversation does not exist", nil)
	}
	return conv, nil
}

// lockConversation serializes turns per conversation: a turn, including
// its report pipeline, completes before the next one is classified.
func (s *service) lockConversation(convID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[convID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[convID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *service) trimHistory(conv *Conversation) {
	if s.cfg.HistoryLimit > 0 && len(conv.Messages) > s.cfg.HistoryLimit {
		conv.Messages = conv.Messages[len(conv.Messages)-s.cfg.HistoryLimit:]
	}
}

func (s *service) botMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderBot,
		Timestamp: s.clock.Now().UTC(),
	}
}

func (s *service) userMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: s.clock.Now().UTC(),
	}
}

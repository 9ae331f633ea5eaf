package telemetry

import (
	"context"
	"time"

	"github.com/unrealities/talkie-trivia-sub000/internal/logger"
	"github.com/unrealities/talkie-trivia-sub000/internal/worker"
)

// EventType identifies a gameplay event worth reporting.
type EventType string

const (
	EventGuessMade         EventType = "guess_made"
	EventHintUsed          EventType = "hint_used"
	EventGameWon           EventType = "game_won"
	EventGameLost          EventType = "game_lost"
	EventGameGivenUp       EventType = "game_given_up"
	EventDifficultyChanged EventType = "difficulty_changed"
)

// Event is a single fire-and-forget notification. The engine never awaits
// or branches on delivery.
type Event struct {
	Type     EventType
	PlayerID string
	GameID   string
	Fields   map[string]any
	At       time.Time
}

// Notifier receives gameplay events. Implementations must not block the
// caller and must swallow their own failures.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) {}

// LogNotifier writes events to the application log. It is the sink the pool
// dispatches to by default.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, event Event) {
	logger.FromContext(ctx).WithPrefix("telemetry").Info(
		"event=%s player=%s game=%s fields=%v", event.Type, event.PlayerID, event.GameID, event.Fields)
}

// PoolNotifier hands events to a worker pool for asynchronous delivery.
// Events are dropped when the queue is full rather than blocking gameplay.
type PoolNotifier struct {
	pool *worker.Pool
	sink Notifier
}

func NewPoolNotifier(pool *worker.Pool, sink Notifier) *PoolNotifier {
	return &PoolNotifier{pool: pool, sink: sink}
}

func (n *PoolNotifier) Notify(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	n.pool.TrySubmit(&deliverJob{sink: n.sink, event: event})
}

type deliverJob struct {
	sink  Notifier
	event Event
}

func (j *deliverJob) Name() string { return "telemetry:" + string(j.event.Type) }

func (j *deliverJob) Run(ctx context.Context) error {
	j.sink.Notify(ctx, j.event)
	return nil
}

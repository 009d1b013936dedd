package conversation

import (
	"time"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
	"github.com/yanqian/outdoor-planner/internal/domain/report"
)

// Stage identifies which question the assistant is currently asking.
type Stage int

const (
	StageAwaitingActivity Stage = iota
	StageAwaitingLocation
	StageAwaitingDate
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingActivity:
		return "awaiting_activity"
	case StageAwaitingLocation:
		return "awaiting_location"
	case StageAwaitingDate:
		return "awaiting_date"
	default:
		return "unknown"
	}
}

// State is the dialogue position of one conversation. Activity is set iff
// the stage is past StageAwaitingActivity, LocationText iff past
// StageAwaitingLocation. A completed report resets State to its zero
// value.
type State struct {
	Stage        Stage         `json:"stage"`
	Activity     activity.Type `json:"activity,omitempty"`
	LocationText string        `json:"locationText,omitempty"`
	DateText     string        `json:"dateText,omitempty"`
}

// Sender distinguishes the two sides of the transcript.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// Message is one entry in the append-only transcript.
type Message struct {
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	Sender    Sender             `json:"sender"`
	Timestamp time.Time          `json:"timestamp"`
	Risks     report.RiskProfile `json:"risks,omitempty"`
	Sources   []string           `json:"sources,omitempty"`
}

// Conversation groups the dialogue state with its transcript. One
// instance exists per active chat; turns are serialized per conversation.
type Conversation struct {
	ID       string    `json:"id"`
	State    State     `json:"state"`
	Messages []Message `json:"messages"`
}

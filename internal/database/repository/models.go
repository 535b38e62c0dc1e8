package repository

import "time"

// Session represents one bridge lifetime.
type Session struct {
	ID           string
	Source       string
	InitialTitle string
	Flags        string // JSON object
	StartedAt    time.Time
	EndedAt      *time.Time
}

// SessionSummary is a session with its traffic counts.
type SessionSummary struct {
	Session
	Messages   int
	Violations int
}

// Message represents one command or event crossing the bridge.
type Message struct {
	ID        string
	SessionID string
	Seq       int64
	Direction string // command|event
	Name      string
	Payload   string
	CreatedAt time.Time
}

// Violation represents a dropped protocol message.
type Violation struct {
	ID         string
	SessionID  string
	Seq        int64
	Direction  string
	Name       string
	Reason     string
	Suggestion string
	Payload    string
	CreatedAt  time.Time
}

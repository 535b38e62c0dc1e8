// Package service holds the journal services built on the repositories.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/jask/portbridge/internal/bridge"
	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/database"
	"github.com/jask/portbridge/internal/database/repository"
	"github.com/jask/portbridge/internal/port"
)

var log = commonlog.GetLogger("portbridge.journal")

// Recorder journals bridge traffic. It is a bridge.Observer; write failures
// are logged and never reach the bridge.
type Recorder struct {
	ctx        context.Context
	Sessions   *repository.SessionRepo
	Messages   *repository.MessageRepo
	Violations *repository.ViolationRepo

	sessionID string
	seq       int64
}

var _ bridge.Observer = (*Recorder)(nil)

// NewRecorder builds a Recorder on db.
func NewRecorder(ctx context.Context, db *sql.DB) *Recorder {
	return &Recorder{
		ctx:        ctx,
		Sessions:   repository.NewSessionRepo(db),
		Messages:   repository.NewMessageRepo(db),
		Violations: repository.NewViolationRepo(db),
	}
}

// Begin opens a session. Call it before the bridge attaches so the startup
// title announcement is journaled.
func (r *Recorder) Begin(source, title string, flags core.Flags) (string, error) {
	if flags == nil {
		flags = core.Flags{}
	}
	raw, err := json.Marshal(flags)
	if err != nil {
		return "", fmt.Errorf("encode flags: %w", err)
	}
	s := repository.Session{
		ID:           uuid.NewString(),
		Source:       source,
		InitialTitle: title,
		Flags:        string(raw),
		StartedAt:    database.Now(),
	}
	if err := r.Sessions.Insert(r.ctx, s); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	r.sessionID = s.ID
	r.seq = 0
	return s.ID, nil
}

// SessionID returns the open session, or "" before Begin.
func (r *Recorder) SessionID() string { return r.sessionID }

// End closes the session.
func (r *Recorder) End() error {
	if r.sessionID == "" {
		return nil
	}
	if err := r.Sessions.End(r.ctx, r.sessionID, database.Now()); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	r.sessionID = ""
	return nil
}

func (r *Recorder) Command(c port.Command) {
	r.message(port.EncodeCommand(c), port.Outbound)
}

func (r *Recorder) Event(e port.Event) {
	r.message(port.EncodeEvent(e), port.Inbound)
}

func (r *Recorder) Violation(err error) {
	if r.sessionID == "" {
		return
	}
	r.seq++
	v := repository.Violation{
		ID:        uuid.NewString(),
		SessionID: r.sessionID,
		Seq:       r.seq,
		Reason:    err.Error(),
		CreatedAt: database.Now(),
	}
	var pv *port.ViolationError
	if errors.As(err, &pv) {
		v.Direction = string(pv.Direction)
		v.Name = pv.Name
		v.Reason = pv.Reason
		v.Suggestion = pv.Suggestion
		v.Payload = string(pv.Payload)
	}
	if err := r.Violations.Insert(r.ctx, v); err != nil {
		log.Errorf("journal violation: %s", err)
	}
}

func (r *Recorder) message(m port.Message, dir port.Direction) {
	if r.sessionID == "" {
		return
	}
	r.seq++
	row := repository.Message{
		ID:        uuid.NewString(),
		SessionID: r.sessionID,
		Seq:       r.seq,
		Direction: string(dir),
		Name:      m.Name,
		Payload:   string(m.Payload),
		CreatedAt: database.Now(),
	}
	if err := r.Messages.Insert(r.ctx, row); err != nil {
		log.Errorf("journal %s %s: %s", dir, m.Name, err)
	}
}

// Package core runs an app core program: a self-contained state machine that
// owns application state and talks to its host only through named ports.
//
// A Runtime is single-threaded and cooperative. Each message is processed to
// completion, and the commands its update emits are published in order before
// the next message is taken from the queue. Messages that arrive while a
// message is being processed, including events sent back by command
// subscribers, wait their turn.
package core

import (
	"encoding/json"
	"slices"

	"github.com/tliron/commonlog"

	"github.com/jask/portbridge/internal/port"
)

var log = commonlog.GetLogger("portbridge.core")

// Flags is the start-up configuration handed to Init.
type Flags map[string]any

// Msg is anything a program's Update accepts. Events from the host arrive as
// port.Event values.
type Msg any

// Program is an Elm-style application.
type Program[M any] interface {
	Init(flags Flags) (M, []port.Command)
	Update(msg Msg, model M) (M, []port.Command)
}

type work struct {
	msg  Msg
	cmds []port.Command
}

type subscription struct {
	fn func(json.RawMessage)
}

// Runtime hosts a Program.
type Runtime[M any] struct {
	prog    Program[M]
	flags   Flags
	model   M
	started bool
	running bool
	queue   []work
	subs    map[string][]*subscription
}

// New prepares prog. Init is not called until Start.
func New[M any](prog Program[M], flags Flags) *Runtime[M] {
	if flags == nil {
		flags = Flags{}
	}
	return &Runtime[M]{prog: prog, flags: flags, subs: make(map[string][]*subscription)}
}

// Start runs Init, publishes its commands, then drains any messages queued
// before it. Commands reach subscribers in the order the program issued
// them, and an event sent during setup is seen before any command the
// program issues in response to it.
func (r *Runtime[M]) Start() {
	if r.started {
		return
	}
	r.started = true
	model, cmds := r.prog.Init(r.flags)
	r.model = model
	r.queue = append([]work{{cmds: cmds}}, r.queue...)
	r.drain()
}

// Started reports whether Start has run.
func (r *Runtime[M]) Started() bool { return r.started }

// Model returns the current program state.
func (r *Runtime[M]) Model() M { return r.model }

// Subscribe registers fn for the outbound port name and returns a function
// that removes the subscription.
func (r *Runtime[M]) Subscribe(name string, fn func(json.RawMessage)) func() {
	if !slices.Contains(port.CommandNames, name) {
		log.Warningf("subscribe to unknown port %q", name)
		return func() {}
	}
	s := &subscription{fn: fn}
	r.subs[name] = append(r.subs[name], s)
	return func() {
		r.subs[name] = slices.DeleteFunc(r.subs[name], func(cur *subscription) bool { return cur == s })
	}
}

// Send delivers an event on the inbound port name.
func (r *Runtime[M]) Send(name string, payload json.RawMessage) error {
	e, err := port.DecodeEvent(port.Message{Name: name, Payload: payload})
	if err != nil {
		return err
	}
	r.enqueue(e)
	return nil
}

// Dispatch delivers a program-local message such as user input.
func (r *Runtime[M]) Dispatch(msg Msg) {
	r.enqueue(msg)
}

func (r *Runtime[M]) enqueue(msg Msg) {
	r.queue = append(r.queue, work{msg: msg})
	r.drain()
}

func (r *Runtime[M]) drain() {
	if !r.started || r.running {
		return
	}
	r.running = true
	defer func() { r.running = false }()

	for len(r.queue) > 0 {
		w := r.queue[0]
		r.queue = r.queue[1:]
		cmds := w.cmds
		if w.msg != nil {
			r.model, cmds = r.prog.Update(w.msg, r.model)
		}
		r.publish(cmds)
	}
}

func (r *Runtime[M]) publish(cmds []port.Command) {
	for _, c := range cmds {
		m := port.EncodeCommand(c)
		subs := slices.Clone(r.subs[m.Name])
		if len(subs) == 0 {
			log.Debugf("dropped %s: no subscriber", m)
			continue
		}
		for _, s := range subs {
			s.fn(m.Payload)
		}
	}
}

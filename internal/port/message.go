package port

import (
	"encoding/json"
	"fmt"
)

// Port names. These must match the app core build exactly.
const (
	NameSetTitle                      = "setTitle"
	NameSetBackgroundClickListener    = "setBackgroundClickListener"
	NameRemoveBackgroundClickListener = "removeBackgroundClickListener"
	NameAddBodyClass                  = "addBodyClass"
	NameRemoveBodyClass               = "removeBodyClass"

	NameReceiveTitle          = "receiveTitle"
	NameListenBackgroundClick = "listenBackgroundClick"
)

// CommandNames lists every outbound port of the app core.
var CommandNames = []string{
	NameSetTitle,
	NameSetBackgroundClickListener,
	NameRemoveBackgroundClickListener,
	NameAddBodyClass,
	NameRemoveBodyClass,
}

// EventNames lists every inbound port of the app core.
var EventNames = []string{
	NameReceiveTitle,
	NameListenBackgroundClick,
}

// Message is the wire form of a command or event.
type Message struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (m Message) String() string {
	if len(m.Payload) == 0 {
		return m.Name
	}
	return fmt.Sprintf("%s %s", m.Name, m.Payload)
}

// Direction tells which way a message travels.
type Direction string

const (
	Outbound Direction = "command"
	Inbound  Direction = "event"
)

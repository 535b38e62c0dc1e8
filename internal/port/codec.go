package port

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

var null = json.RawMessage("null")

// DecodeCommand converts a wire message from the app core into a Command.
func DecodeCommand(m Message) (Command, error) {
	switch m.Name {
	case NameSetTitle:
		title, err := decodeString(Outbound, m)
		if err != nil {
			return nil, err
		}
		return SetTitle{Title: title}, nil
	case NameSetBackgroundClickListener:
		if err := decodeUnit(Outbound, m); err != nil {
			return nil, err
		}
		return SetBackgroundClickListener{}, nil
	case NameRemoveBackgroundClickListener:
		if err := decodeUnit(Outbound, m); err != nil {
			return nil, err
		}
		return RemoveBackgroundClickListener{}, nil
	case NameAddBodyClass:
		class, err := decodeClass(m)
		if err != nil {
			return nil, err
		}
		return AddBodyClass{Class: class}, nil
	case NameRemoveBodyClass:
		class, err := decodeClass(m)
		if err != nil {
			return nil, err
		}
		return RemoveBodyClass{Class: class}, nil
	default:
		return nil, unknownName(Outbound, m)
	}
}

// EncodeCommand converts c into its wire form.
func EncodeCommand(c Command) Message {
	switch c := c.(type) {
	case SetTitle:
		return Message{Name: NameSetTitle, Payload: mustString(c.Title)}
	case SetBackgroundClickListener:
		return Message{Name: NameSetBackgroundClickListener, Payload: null}
	case RemoveBackgroundClickListener:
		return Message{Name: NameRemoveBackgroundClickListener, Payload: null}
	case AddBodyClass:
		return Message{Name: NameAddBodyClass, Payload: mustString(c.Class)}
	case RemoveBodyClass:
		return Message{Name: NameRemoveBodyClass, Payload: mustString(c.Class)}
	default:
		panic(fmt.Sprintf("port: unhandled command %T", c))
	}
}

// DecodeEvent converts a wire message from the host into an Event.
func DecodeEvent(m Message) (Event, error) {
	switch m.Name {
	case NameReceiveTitle:
		title, err := decodeString(Inbound, m)
		if err != nil {
			return nil, err
		}
		return ReceiveTitle{Title: title}, nil
	case NameListenBackgroundClick:
		var clicked bool
		if err := json.Unmarshal(m.Payload, &clicked); err != nil {
			return nil, violation(Inbound, m, "payload must be a boolean")
		}
		if !clicked {
			return nil, violation(Inbound, m, "payload must be true")
		}
		return ListenBackgroundClick{Clicked: true}, nil
	default:
		return nil, unknownName(Inbound, m)
	}
}

// EncodeEvent converts e into its wire form.
func EncodeEvent(e Event) Message {
	switch e := e.(type) {
	case ReceiveTitle:
		return Message{Name: NameReceiveTitle, Payload: mustString(e.Title)}
	case ListenBackgroundClick:
		return Message{Name: NameListenBackgroundClick, Payload: json.RawMessage("true")}
	default:
		panic(fmt.Sprintf("port: unhandled event %T", e))
	}
}

func decodeString(dir Direction, m Message) (string, error) {
	var s *string
	if err := json.Unmarshal(m.Payload, &s); err != nil || s == nil {
		return "", violation(dir, m, "payload must be a string")
	}
	return *s, nil
}

func decodeUnit(dir Direction, m Message) error {
	p := bytes.TrimSpace(m.Payload)
	if len(p) == 0 || bytes.Equal(p, null) {
		return nil
	}
	return violation(dir, m, "payload must be null")
}

// decodeClass rejects tokens the host class list would throw on.
func decodeClass(m Message) (string, error) {
	class, err := decodeString(Outbound, m)
	if err != nil {
		return "", err
	}
	if class == "" {
		return "", violation(Outbound, m, "class name must not be empty")
	}
	if strings.ContainsAny(class, " \t\n\f\r") {
		return "", violation(Outbound, m, "class name must not contain whitespace")
	}
	return class, nil
}

func mustString(s string) json.RawMessage {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return b
}

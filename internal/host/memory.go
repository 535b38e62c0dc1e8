package host

import (
	"slices"
	"sort"
	"strings"
)

// Memory is an in-process Document used by the inspector, scenarios and
// tests. It is not safe for concurrent use.
type Memory struct {
	title     string
	classes   []string
	listeners map[ListenerID]func()
	next      ListenerID
}

// NewMemory returns a document whose title is title and whose body has no
// classes.
func NewMemory(title string) *Memory {
	return &Memory{title: title, listeners: make(map[ListenerID]func())}
}

func (m *Memory) Title() string         { return m.title }
func (m *Memory) SetTitle(title string) { m.title = title }

func (m *Memory) AddBodyClass(class string) {
	if !slices.Contains(m.classes, class) {
		m.classes = append(m.classes, class)
	}
}

func (m *Memory) RemoveBodyClass(class string) {
	m.classes = slices.DeleteFunc(m.classes, func(c string) bool { return c == class })
}

func (m *Memory) AddClickListener(fn func()) ListenerID {
	m.next++
	m.listeners[m.next] = fn
	return m.next
}

func (m *Memory) RemoveClickListener(id ListenerID) {
	delete(m.listeners, id)
}

// Click simulates a click on the document background, invoking listeners in
// registration order.
func (m *Memory) Click() {
	ids := make([]ListenerID, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if fn, ok := m.listeners[id]; ok {
			fn()
		}
	}
}

// Classes returns the body class list in insertion order.
func (m *Memory) Classes() []string { return slices.Clone(m.classes) }

// ClassName returns the body class attribute.
func (m *Memory) ClassName() string { return strings.Join(m.classes, " ") }

// HasClass reports whether the body carries class.
func (m *Memory) HasClass(class string) bool { return slices.Contains(m.classes, class) }

// Listeners reports the number of registered click listeners.
func (m *Memory) Listeners() int { return len(m.listeners) }

// Package scenario replays scripted app core commands against a bridge on a
// simulated document and checks the outcome.
//
// A scenario is a TOML file:
//
//	title = "Hello"
//
//	[[step]]
//	command = "setTitle"
//	payload = '"World"'
//
//	[[step]]
//	command = "setBackgroundClickListener"
//
//	[[step]]
//	click = true
//
//	[expect]
//	title = "World"
//	listeners = 1
//	events = ['receiveTitle "Hello"', 'receiveTitle "World"', 'listenBackgroundClick true']
//
// Payloads are raw JSON so malformed messages can be scripted too.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jask/portbridge/internal/bridge"
	"github.com/jask/portbridge/internal/host"
	"github.com/jask/portbridge/internal/port"
	"github.com/jask/portbridge/internal/port/porttest"
)

// File is a parsed scenario.
type File struct {
	Title  string         `toml:"title"`
	Flags  map[string]any `toml:"flags"`
	Steps  []Step         `toml:"step"`
	Expect *Expect        `toml:"expect"`
}

// Step is either a command or a background click.
type Step struct {
	Command string `toml:"command"`
	Payload string `toml:"payload"`
	Click   bool   `toml:"click"`
}

// Expect lists the checks run after the last step. Absent fields are not
// checked.
type Expect struct {
	Title      *string   `toml:"title"`
	Classes    *[]string `toml:"classes"`
	Listeners  *int      `toml:"listeners"`
	Events     *[]string `toml:"events"`
	Violations *int      `toml:"violations"`
}

// Result is what a run produced.
type Result struct {
	Events     []port.Message
	Violations []error
	Title      string
	Classes    []string
	Listeners  int
	ClickState bridge.ClickState
}

// Load reads and validates a scenario file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read scenario: %w", err)
	}
	f, err := Parse(string(data))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates scenario text. Unknown keys are errors.
func Parse(data string) (File, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return File{}, fmt.Errorf("parse scenario: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, fmt.Errorf("unknown scenario keys: %s", strings.Join(keys, ", "))
	}
	for i, s := range f.Steps {
		if (s.Command == "") == !s.Click {
			return File{}, fmt.Errorf("step %d: exactly one of command or click is required", i+1)
		}
		if s.Click && s.Payload != "" {
			return File{}, fmt.Errorf("step %d: click takes no payload", i+1)
		}
		if s.Payload != "" && !json.Valid([]byte(s.Payload)) {
			return File{}, fmt.Errorf("step %d: payload is not valid JSON", i+1)
		}
	}
	return f, nil
}

// Run replays f. The returned error reports every failed expectation; the
// Result is filled in either way.
func Run(f File, opts ...bridge.Option) (Result, error) {
	var res Result
	collect := bridge.ObserverFuncs{OnViolation: func(err error) {
		res.Violations = append(res.Violations, err)
	}}

	doc := host.NewMemory(f.Title)
	lb := porttest.New()
	b, err := bridge.Attach(lb, doc, append(slices.Clone(opts), bridge.WithObserver(collect))...)
	if err != nil {
		return res, err
	}
	defer b.Close()

	for _, s := range f.Steps {
		if s.Click {
			doc.Click()
			continue
		}
		var payload json.RawMessage
		if s.Payload != "" {
			payload = json.RawMessage(s.Payload)
		}
		b.Deliver(port.Message{Name: s.Command, Payload: payload})
	}

	res.Events = lb.Events()
	res.Title = doc.Title()
	res.Classes = doc.Classes()
	res.Listeners = doc.Listeners()
	res.ClickState = b.ClickState()
	return res, check(f.Expect, res)
}

func check(exp *Expect, res Result) error {
	if exp == nil {
		return nil
	}
	var errs []error
	if exp.Title != nil && *exp.Title != res.Title {
		errs = append(errs, fmt.Errorf("title: got %q, want %q", res.Title, *exp.Title))
	}
	if exp.Classes != nil && !slices.Equal(*exp.Classes, res.Classes) {
		errs = append(errs, fmt.Errorf("classes: got %q, want %q", res.Classes, *exp.Classes))
	}
	if exp.Listeners != nil && *exp.Listeners != res.Listeners {
		errs = append(errs, fmt.Errorf("listeners: got %d, want %d", res.Listeners, *exp.Listeners))
	}
	if exp.Violations != nil && *exp.Violations != len(res.Violations) {
		errs = append(errs, fmt.Errorf("violations: got %d, want %d", len(res.Violations), *exp.Violations))
	}
	if exp.Events != nil {
		got := make([]string, len(res.Events))
		for i, m := range res.Events {
			got[i] = m.String()
		}
		if !slices.Equal(*exp.Events, got) {
			errs = append(errs, fmt.Errorf("events: got %q, want %q", got, *exp.Events))
		}
	}
	return errors.Join(errs...)
}

// Package host abstracts the document object model the bridge drives.
package host

import "errors"

// ErrHostUnavailable is returned when there is no document to drive, for
// example when running outside a browser page.
var ErrHostUnavailable = errors.New("host unavailable")

// ListenerID identifies a registered click listener.
type ListenerID uint64

// Document is the slice of the host environment the bridge uses. All methods
// must be called from the host's event loop.
//
// Class operations follow class list semantics: adding a present class or
// removing an absent one is a no-op.
type Document interface {
	Title() string
	SetTitle(title string)

	AddBodyClass(class string)
	RemoveBodyClass(class string)

	// AddClickListener registers fn for non-capturing click events on the
	// document. RemoveClickListener of an unknown id is a no-op.
	AddClickListener(fn func()) ListenerID
	RemoveClickListener(id ListenerID)
}

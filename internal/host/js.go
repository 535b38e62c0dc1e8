//go:build js && wasm

package host

import (
	"fmt"
	"syscall/js"
)

// JS drives the browser document through syscall/js.
type JS struct {
	doc   js.Value
	funcs map[ListenerID]js.Func
	next  ListenerID
}

// NewJS binds to the global document. It fails with ErrHostUnavailable when
// there is no document or body, as in a worker.
func NewJS() (*JS, error) {
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, fmt.Errorf("%w: no global document", ErrHostUnavailable)
	}
	if !doc.Get("body").Truthy() {
		return nil, fmt.Errorf("%w: document has no body", ErrHostUnavailable)
	}
	return &JS{doc: doc, funcs: make(map[ListenerID]js.Func)}, nil
}

func (d *JS) Title() string         { return d.doc.Get("title").String() }
func (d *JS) SetTitle(title string) { d.doc.Set("title", title) }

func (d *JS) AddBodyClass(class string) {
	d.classList().Call("add", class)
}

func (d *JS) RemoveBodyClass(class string) {
	d.classList().Call("remove", class)
}

func (d *JS) classList() js.Value {
	return d.doc.Get("body").Get("classList")
}

func (d *JS) AddClickListener(fn func()) ListenerID {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	d.next++
	d.funcs[d.next] = f
	d.doc.Call("addEventListener", "click", f, false)
	return d.next
}

func (d *JS) RemoveClickListener(id ListenerID) {
	f, ok := d.funcs[id]
	if !ok {
		return
	}
	delete(d.funcs, id)
	d.doc.Call("removeEventListener", "click", f, false)
	f.Release()
}

//go:build js && wasm

// Command portbridge-wasm is the browser build of the bridge. It registers a
// global PortBridge object whose init(flags) starts the demo app core on the
// page document:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go();
//	  WebAssembly.instantiateStreaming(fetch("main.wasm"), go.importObject)
//	    .then((r) => {
//	      go.run(r.instance);
//	      const app = PortBridge.init({theme: "dark"});
//	      if (app.error) throw new Error(app.error);
//	      document.querySelector("#menu").onclick = (e) => { e.stopPropagation(); app.toggleMenu(); };
//	    });
//	</script>
package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/tliron/commonlog"

	"github.com/jask/portbridge/internal/bridge"
	"github.com/jask/portbridge/internal/core"
	"github.com/jask/portbridge/internal/demoapp"
	"github.com/jask/portbridge/internal/host"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("portbridge.wasm")

func main() {
	commonlog.Configure(1, nil)
	js.Global().Set("PortBridge", js.ValueOf(map[string]any{
		"init": js.FuncOf(initBridge),
	}))
	select {} // hang around to process events
}

func initBridge(this js.Value, args []js.Value) any {
	flags := core.Flags{}
	if len(args) > 0 && args[0].Truthy() {
		raw := js.Global().Get("JSON").Call("stringify", args[0]).String()
		if err := json.Unmarshal([]byte(raw), &flags); err != nil {
			return failure(fmt.Errorf("flags: %w", err))
		}
	}

	doc, err := host.NewJS()
	if err != nil {
		return failure(err)
	}
	h, err := bridge.Initialize[demoapp.Model](demoapp.Program{}, flags, doc)
	if err != nil {
		return failure(err)
	}

	var funcs []js.Func
	fn := func(f func(args []js.Value)) js.Func {
		jf := js.FuncOf(func(this js.Value, args []js.Value) any {
			f(args)
			return nil
		})
		funcs = append(funcs, jf)
		return jf
	}
	return js.ValueOf(map[string]any{
		"toggleMenu": fn(func([]js.Value) { h.Core.Dispatch(demoapp.ToggleMenu{}) }),
		"toggleDark": fn(func([]js.Value) { h.Core.Dispatch(demoapp.ToggleDark{}) }),
		"editTitle": fn(func(args []js.Value) {
			if len(args) == 0 || args[0].Type() != js.TypeString {
				log.Warning("editTitle expects a string")
				return
			}
			h.Core.Dispatch(demoapp.EditTitle{Title: args[0].String()})
		}),
		"close": fn(func([]js.Value) {
			h.Close()
			// close is released too; calling it again throws in JS
			for _, f := range funcs {
				f.Release()
			}
		}),
	})
}

func failure(err error) any {
	log.Errorf("%s", err)
	return js.ValueOf(map[string]any{"error": err.Error()})
}

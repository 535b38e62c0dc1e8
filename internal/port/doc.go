// Package port defines the messages exchanged between the app core and the
// host bridge.
//
// At the boundary every message is an untyped {name, payload} pair. Inside
// the process the two directions are closed variant types: Command flows from
// the app core to the bridge, Event flows from the bridge to the app core.
// Adding a message kind means adding a variant, and the type switches in the
// codec and the bridge dispatcher must be extended with it.
package port

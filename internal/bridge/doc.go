// Package bridge connects an app core to a host document.
//
// The app core decides what should happen to the page but cannot touch it.
// It emits named commands; the bridge performs the matching host effect and,
// where the contract asks for it, reports host state back as an event:
//
//	setTitle(string)                -> document title, then receiveTitle(title)
//	setBackgroundClickListener()    -> attach a document click listener
//	removeBackgroundClickListener() -> detach it
//	addBodyClass(string)            -> body class list add
//	removeBodyClass(string)         -> body class list remove
//
// While attached, every click on the document is reported as
// listenBackgroundClick(true). On attach the bridge announces the current
// title once; beyond that it initiates nothing.
//
// Everything runs on the host's event loop. Malformed or unknown commands are
// protocol violations: they are logged, passed to the Observer and dropped.
package bridge

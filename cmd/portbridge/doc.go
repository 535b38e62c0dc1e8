// Command portbridge drives the port bridge outside a browser.
//
// Commands
//
//   - inspect        Run the demo app core on a simulated document in a TUI
//   - replay         Replay scenario files against the bridge and check them
//   - journal list   List recorded bridge sessions
//   - journal show   Print the traffic and violations of one session
//   - config init    Write a default config file
//
// Configuration is read from $PORTBRIDGE_CONFIG or
// ~/.config/portbridge/config.toml, with PORTBRIDGE_* environment overrides.
package main

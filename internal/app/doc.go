// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: build the
// evacuation area, answer route queries and hand each plan to the configured
// sinks. It is decoupled from any specific entrypoint like a CLI.
package app

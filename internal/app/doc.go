// Package app provides the orchestration layer for vaultshell.
//
// # Overview
//
// This package wires together configuration, logging, tracing, the backend
// bridge and the UI. It serves as the composition root where all dependencies
// are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config.toml
//	       ├─────> logging.Init()         Diagnostic log file
//	       ├─────> telemetry.Setup()      Optional OTLP export
//	       ├─────> backend.NewClient()    HTTP client
//	       ├─────> backend.Register()     Bind get_data_from_fastapi
//	       └─────> ui.Run()               ResultView (blocks)
//
// When stdout is not a terminal, Run falls back to Invoke, which resolves
// the same view without a program and prints its plain rendering.
//
// # Error Handling
//
// Fatal errors (returned from Run/Invoke):
//   - Configuration file invalid
//   - Unknown log level, unwritable log directory
//   - Backend client or exporter initialization failure
//
// A failed bridge call is never fatal for Run: the view shows the fixed
// failure message and the cause goes to the diagnostic log. Invoke reports it
// as ErrInvocationFailed so scripts can check the exit status.
package app

// Package diagnostics turns puzzle engine events into log lines and durable
// records.
//
// Every event becomes one "[Eight #N] ..." line on the module logger. When a
// store is configured the event is also appended to the diagnostic history,
// and resolved rounds are recorded separately for later review. Store
// failures are logged and never reach the engine.
package diagnostics

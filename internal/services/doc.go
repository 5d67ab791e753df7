// Package services defines the shared error taxonomy for the processing
// pipeline.
//
// Every failure a pipeline step can produce is tagged with one of the sentinel
// markers below via Wrap, so the orchestrator can branch on errors.Is without
// parsing messages. Markers that represent degraded-but-continue outcomes
// (malformed model output, unreachable endpoint) are distinct from fatal
// per-file ones (placement failure) and from quarantine routes (unsupported
// type, empty content).
package services

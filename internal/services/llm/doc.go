// Package llm wraps an OpenAI-compatible chat completion endpoint.
//
// The client issues JSON-only completion requests with a finite HTTP timeout
// and bounded retry, and exposes DecodeLLMJSON for decoding model payloads
// that arrive wrapped in code fences or surrounding prose despite the
// instructions. Callers own prompt construction; this package owns transport
// and payload hygiene only.
package llm

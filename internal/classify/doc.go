// Package classify decides where a document belongs.
//
// The Classifier sends extracted text and the original filename to a chat
// completion endpoint and parses the JSON reply into a Result (category,
// suggested filename, one-sentence summary). Every failure mode — transport
// errors, malformed payloads, missing fields — degrades into a quarantine
// Result instead of an error, so the pipeline always has a well-formed
// decision to act on.
//
// The category vocabulary is rebuilt from the library directory on every call
// rather than cached: a category created by the previous file must be visible
// to the next one.
package classify

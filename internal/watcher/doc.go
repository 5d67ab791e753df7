// Package watcher listens for file-creation events in the watch folder and
// drives each new document through the extract, classify, place, and audit
// stages. Events are handled one at a time; a failure on one document never
// stops the watch loop.
package watcher

// Package extract turns a document file into truncated plain text.
//
// Handlers are resolved by file extension: plain text variants are read as
// UTF-8 with a Latin-1 fallback that cannot fail, and PDFs are read page by
// page with unextractable pages skipped rather than failing the document. A
// PDF that cannot be opened at all yields empty text, signalling "nothing
// extracted" downstream instead of raising. Output is truncated to the first
// N words by naive whitespace tokenization to bound request size.
package extract

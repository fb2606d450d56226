// Package extract turns a fetched HTML page into a model.ExtractionResult.
//
// The Engine decodes the body, builds a document tree through package dom
// and runs a fixed sequence of steps over it: metadata, social links,
// emails, phones and media. Every step reads the shared tree and writes one
// distinct field of the result, so the steps may run concurrently without
// locking and the result does not depend on scheduling.
//
// Extraction never fails. Malformed markup is repaired by the parser,
// undecodable bytes are dropped and invalid phone candidates are skipped.
package extract

// Package pipeline walks three FASTQ streams in lock-step, copies each
// index sequence into the paired read headers, and emits the rewritten
// read-1/read-2 records.
//
// One triplet is fully parsed, validated, augmented and written before
// the next is read. Failures surface as typed errors; the caller decides
// process termination.
package pipeline

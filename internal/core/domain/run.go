// Package domain contains the core types for the prompt chaining pipeline.
package domain

import "time"

// ContextItem is one context file loaded from a variant directory.
// Immutable once loaded.
type ContextItem struct {
	// Name is the filename without extension, used for output naming.
	Name string

	// Content is the file's text content.
	Content string
}

// PromptTemplate holds the two fixed prompt blocks loaded once per run.
type PromptTemplate struct {
	// System is the system prompt text.
	System string

	// Task is the task prompt text.
	Task string
}

// CombinedPrompt is the full request payload for one model call.
// Created per (A,B) combination and consumed immediately by the query
// stage; never persisted.
type CombinedPrompt struct {
	// SourceA is the variant A context item that contributed.
	SourceA ContextItem

	// SourceB is the variant B context item that contributed.
	SourceB ContextItem

	// Text is the assembled prompt sent to the model.
	Text string
}

// RunResult records the outcome of one combination.
type RunResult struct {
	// SourceA is the variant A item name.
	SourceA string

	// SourceB is the variant B item name.
	SourceB string

	// Response is the raw model response text. Empty when Err is set.
	Response string

	// OutputPath is where the response was written. Empty on failure.
	OutputPath string

	// Err is the provider or write error for this combination, if any.
	Err error
}

// Failed returns true if this combination did not complete.
func (r RunResult) Failed() bool {
	return r.Err != nil
}

// Pair returns the "a x b" label used in logs and the summary.
func (r RunResult) Pair() string {
	return r.SourceA + " x " + r.SourceB
}

// RunSummary is the run-level tally reported after all combinations.
type RunSummary struct {
	// RunID uniquely identifies this run in logs.
	RunID string

	// Total is the number of combinations processed (|A| * |B|).
	Total int

	// Succeeded is the number of combinations written successfully.
	Succeeded int

	// FailedPairs lists the "a x b" labels of failed combinations,
	// in processing order, for manual retry.
	FailedPairs []string

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Failed returns the number of failed combinations.
func (s RunSummary) Failed() int {
	return len(s.FailedPairs)
}

// AllSucceeded returns true if every combination completed.
func (s RunSummary) AllSucceeded() bool {
	return len(s.FailedPairs) == 0
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress defines the observer that the conversion pipeline
// reports to. A sink receives a completion fraction and a short status
// label before each unit of work; it is a pure observer, and the absence
// of one never changes conversion behavior.
package progress

import (
	"fmt"
	"io"
)

// Sink receives conversion progress. Fraction is in [0, 1]; status is a
// short human-readable label for the step about to run.
type Sink interface {
	Step(fraction float64, status string)
}

// Nop discards all progress events.
type Nop struct{}

// Step implements Sink.
func (Nop) Step(float64, string) {}

// Func adapts a plain function to the Sink interface.
type Func func(fraction float64, status string)

// Step implements Sink.
func (f Func) Step(fraction float64, status string) { f(fraction, status) }

// Writer prints one line per progress event to an io.Writer, suitable for
// batch output or log capture.
type Writer struct {
	W io.Writer
}

// Step implements Sink.
func (w Writer) Step(fraction float64, status string) {
	fmt.Fprintf(w.W, "[%3.0f%%] %s\n", fraction*100, status)
}

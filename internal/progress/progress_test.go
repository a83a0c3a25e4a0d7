// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package progress

import (
	"bytes"
	"testing"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	sink := Writer{W: &buf}

	sink.Step(0, "Starting conversion")
	sink.Step(0.25, "Removing watermark: page 1/2")
	sink.Step(1, "Done")

	want := "[  0%] Starting conversion\n" +
		"[ 25%] Removing watermark: page 1/2\n" +
		"[100%] Done\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFunc(t *testing.T) {
	var gotFraction float64
	var gotStatus string
	sink := Func(func(fraction float64, status string) {
		gotFraction = fraction
		gotStatus = status
	})

	sink.Step(0.5, "Generating slides")

	if gotFraction != 0.5 || gotStatus != "Generating slides" {
		t.Errorf("got (%v, %q)", gotFraction, gotStatus)
	}
}

func TestNop(t *testing.T) {
	// Must accept any event without effect.
	Nop{}.Step(0.7, "anything")
}

package models

import "strings"

// SegmentSeparator joins response segments into one assistant message
const SegmentSeparator = "\n"

// Reply is the parsed answer of a generateContent call
type Reply struct {
	// Segments are the text parts of the first candidate, in order
	Segments     []string
	FinishReason string
}

// Text returns the segments joined into a single assistant message
func (r *Reply) Text() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Segments, SegmentSeparator)
}

// Empty reports whether the reply carries no segments
func (r *Reply) Empty() bool {
	return r == nil || len(r.Segments) == 0
}

// Package api provides the Gemini REST API client implementation.
package api

// GJSON paths for extracting values from generateContent responses.
const (
	PathCandidates   = "candidates"
	PathFirst        = "candidates.0"
	PathContent      = "candidates.0.content"
	PathParts        = "candidates.0.content.parts"
	PathFinishReason = "candidates.0.finishReason"

	// Relative to a part object
	PathPartText = "text"

	// Error envelope returned with non-2xx statuses
	PathErrorMessage = "error.message"
	PathErrorStatus  = "error.status"

	// maxErrorBody caps how much of a failed response is kept for diagnostics
	maxErrorBody = 4096
)

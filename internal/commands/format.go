package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/kondate/internal/chat"
	apierrors "github.com/diogo/kondate/internal/errors"
)

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	// Show response body if available
	if body := apierrors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
	}

	switch {
	case errors.Is(err, apierrors.ErrMissingAPIKey):
		sb.WriteString(dimStyle.Render("\n  Hint: Set GEMINI_API_KEY, add it to .env, or pass --api-key"))
	case apierrors.IsAuthError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The API key was rejected. Check it with 'kondate config'"))
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	case apierrors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The model returned no usable recipe. Try again"))
	case errors.Is(err, chat.ErrNoIngredients):
		sb.WriteString(dimStyle.Render("\n  Hint: Pass ingredients as name=grams, e.g. onion=200"))
	}

	return sb.String()
}

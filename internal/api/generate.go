package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/kondate/internal/errors"
	"github.com/diogo/kondate/internal/models"
)

// GenerateContent posts the request to the model and parses the first candidate
func (c *GeminiClient) GenerateContent(ctx context.Context, req models.GenerateRequest) (*models.Reply, error) {
	if len(req.Contents) == 0 {
		return nil, fmt.Errorf("request has no contents")
	}

	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	endpoint := c.GetModel().GenerateURL(c.Endpoint())

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	query := url.Values{}
	query.Set(models.APIKeyQueryParam, c.apiKey)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint+"?"+query.Encode(),
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// endpoint is logged without the key
		return nil, apierrors.NewNetworkErrorWithEndpoint("generate content", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, endpoint, errorBody)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint("read response", endpoint, err)
	}

	return parseResponse(body)
}

// statusError maps a non-2xx answer to a typed error
func statusError(status int, endpoint string, body []byte) error {
	message := "generate content failed"
	if gjson.ValidBytes(body) {
		if m := gjson.GetBytes(body, PathErrorMessage).String(); m != "" {
			message = m
		}
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return apierrors.NewAuthError(status, message)
	}
	return apierrors.NewAPIErrorWithBody(status, endpoint, message, string(body))
}

// parseResponse extracts candidates[0].content.parts[*].text in order.
// A part without a text field contributes an empty segment.
func parseResponse(body []byte) (*models.Reply, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(body)

	candidates := parsed.Get(PathCandidates)
	if !candidates.Exists() || !candidates.IsArray() {
		return nil, apierrors.NewParseError("no candidates found", PathCandidates)
	}

	if !parsed.Get(PathFirst).Exists() {
		return nil, apierrors.NewParseError("candidates array is empty", PathFirst)
	}

	content := parsed.Get(PathContent)
	if !content.Exists() || !content.IsObject() {
		return nil, apierrors.NewParseError("candidate has no content", PathContent)
	}

	parts := parsed.Get(PathParts)
	if !parts.Exists() || !parts.IsArray() {
		return nil, apierrors.NewParseError("content has no parts", PathParts)
	}

	reply := &models.Reply{
		Segments:     []string{},
		FinishReason: parsed.Get(PathFinishReason).String(),
	}
	parts.ForEach(func(_, part gjson.Result) bool {
		reply.Segments = append(reply.Segments, part.Get(PathPartText).String())
		return true
	})

	return reply, nil
}

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultFailureMessage is used when the pipeline reports failure without a message.
const DefaultFailureMessage = "Unknown error"

// Output is the success variant of a pipeline result.
type Output struct {
	Transcript string
	Summary    string
	Duration   float64
	Language   string
}

// Result is the decoded pipeline payload. Exactly one of Output or Message is meaningful:
// Output is non-nil when the pipeline reported success.
type Result struct {
	Output  *Output
	Message string
	Raw     json.RawMessage
}

// OK reports whether the pipeline reported success.
func (r Result) OK() bool {
	return r.Output != nil
}

// DecodeError reports a 2xx response body that is not a usable pipeline result.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode pipeline result: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode pipeline result: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type wireResult struct {
	Success    *bool   `json:"success"`
	Message    *string `json:"message"`
	Transcript *struct {
		Text *string `json:"text"`
	} `json:"transcript"`
	Summary  *string `json:"summary"`
	Metadata *struct {
		Duration *float64 `json:"duration"`
		Language *string  `json:"language"`
	} `json:"metadata"`
}

// DecodeResult parses a pipeline response body. A missing or false success flag yields
// the failure variant; a success payload lacking any required field is a DecodeError.
func DecodeResult(data []byte) (Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{}, &DecodeError{Reason: "body is not a JSON object"}
	}

	var w wireResult
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return Result{}, &DecodeError{Reason: "invalid JSON", Err: err}
	}

	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)

	if w.Success == nil || !*w.Success {
		msg := DefaultFailureMessage
		if w.Message != nil && strings.TrimSpace(*w.Message) != "" {
			msg = *w.Message
		}
		return Result{Message: msg, Raw: raw}, nil
	}

	var missing []string
	if w.Transcript == nil || w.Transcript.Text == nil {
		missing = append(missing, "transcript.text")
	}
	if w.Summary == nil {
		missing = append(missing, "summary")
	}
	if w.Metadata == nil || w.Metadata.Duration == nil {
		missing = append(missing, "metadata.duration")
	}
	if w.Metadata == nil || w.Metadata.Language == nil {
		missing = append(missing, "metadata.language")
	}
	if len(missing) > 0 {
		return Result{}, &DecodeError{Reason: "missing " + strings.Join(missing, ", ")}
	}

	return Result{
		Output: &Output{
			Transcript: *w.Transcript.Text,
			Summary:    *w.Summary,
			Duration:   *w.Metadata.Duration,
			Language:   *w.Metadata.Language,
		},
		Raw: raw,
	}, nil
}

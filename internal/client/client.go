package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

const (
	maxResponseBytes = 64 << 20
	maxErrorBody     = 512
)

// HTTPError is returned for any non-2xx response from the pipeline endpoint.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pipeline returned %s", e.Status)
	}
	return fmt.Sprintf("pipeline returned %s: %s", e.Status, e.Body)
}

// ProcessFile streams the file as a multipart upload and decodes the pipeline result.
// Transport failures, non-2xx statuses and undecodable bodies are returned as errors;
// a decoded payload reporting success=false is a Result, not an error.
func (c *implClient) ProcessFile(ctx context.Context, file domain.AudioFile, req domain.Request) (Result, error) {
	src, err := os.Open(file.Path)
	if err != nil {
		return Result{}, fmt.Errorf("open audio: %w", err)
	}

	contentType := detectContentType(src, file.Extension)

	body, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer src.Close()
		pw.CloseWithError(writeUpload(mw, src, file.Filename, contentType))
	}()
	defer body.Close()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(req), body)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug(ctx, "POST %s (%s, %s)", httpReq.URL, file.Filename, contentType)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("submit %s: %w", file.Filename, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug(ctx, "%s answered %s in %s", file.Filename, resp.Status, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	return DecodeResult(data)
}

func (c *implClient) requestURL(req domain.Request) string {
	params := url.Values{}
	params.Set("ratio", strconv.FormatFloat(req.Ratio, 'f', -1, 64))
	if req.Subject != "" {
		params.Set("subject", req.Subject)
	}
	return c.endpoint + "?" + params.Encode()
}

// writeUpload writes the single "file" part and closes the multipart writer.
func writeUpload(mw *multipart.Writer, src io.Reader, filename, contentType string) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("stream audio: %w", err)
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

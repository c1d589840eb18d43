package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/batch"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/discovery"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

type harness struct {
	srv   *httptest.Server
	hits  atomic.Int32
	input string
	out   string
}

func newHarness(t *testing.T, names ...string) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &harness{
		input: t.TempDir(),
		out:   filepath.Join(t.TempDir(), "batch_output"),
	}
	r := gin.New()
	r.POST("/api/pipeline", func(c *gin.Context) {
		h.hits.Add(1)
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"transcript": gin.H{"text": "transcript"},
			"summary":    "summary",
			"metadata":   gin.H{"duration": 30.0, "language": "en"},
		})
	})
	h.srv = httptest.NewServer(r)
	t.Cleanup(h.srv.Close)

	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(h.input, n), []byte("audio"), 0644))
	}
	return h
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootProcessesDirectory(t *testing.T) {
	h := newHarness(t, "week1.mp3", "week2.m4a", "readme.txt")

	out, err := h.run("", h.input, "--url", h.srv.URL, "--output", h.out, "--yes", "--config", "")
	require.NoError(t, err)

	assert.Equal(t, int32(2), h.hits.Load())
	assert.Contains(t, out, "Found 2 audio file(s)")
	assert.Contains(t, out, "BATCH PROCESSING SUMMARY")
	assert.Contains(t, out, "Total audio processed: 60.0 seconds")

	summary, err := batch.LoadSummary(filepath.Join(h.out, batch.SummaryFilename))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Successful)
	assert.FileExists(t, filepath.Join(h.out, "week1", "study_notes.md"))
}

func TestRootConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		proceed bool
	}{
		{"yes", "yes\n", true},
		{"y upper", "Y\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "a.mp3")

			out, err := h.run(tt.answer, h.input, "--url", h.srv.URL, "--output", h.out, "--config", "")
			require.NoError(t, err)

			if tt.proceed {
				assert.Equal(t, int32(1), h.hits.Load())
			} else {
				assert.Contains(t, out, "Cancelled.")
				assert.Zero(t, h.hits.Load())
				assert.NoDirExists(t, h.out)
			}
		})
	}
}

func TestRootRejectsInvalidRatio(t *testing.T) {
	for _, ratio := range []string{"0.04", "1.01"} {
		t.Run(ratio, func(t *testing.T) {
			h := newHarness(t, "a.mp3")

			out, err := h.run("", h.input, "--url", h.srv.URL, "--output", h.out, "--ratio", ratio, "--yes", "--config", "")
			assert.ErrorIs(t, err, domain.ErrInvalidRatio)
			assert.NotContains(t, out, "Searching for audio files")
			assert.Zero(t, h.hits.Load())
		})
	}
}

func TestRootAcceptsBoundaryRatio(t *testing.T) {
	for _, ratio := range []string{"0.05", "1.0"} {
		t.Run(ratio, func(t *testing.T) {
			h := newHarness(t, "a.mp3")

			_, err := h.run("", h.input, "--url", h.srv.URL, "--output", h.out, "--ratio", ratio, "--yes", "--config", "")
			assert.NoError(t, err)
			assert.Equal(t, int32(1), h.hits.Load())
		})
	}
}

func TestRootNoAudioFiles(t *testing.T) {
	h := newHarness(t, "slides.pdf")

	_, err := h.run("", h.input, "--url", h.srv.URL, "--output", h.out, "--yes", "--config", "")
	assert.ErrorIs(t, err, discovery.ErrNoAudioFiles)
	assert.Zero(t, h.hits.Load())
}

func TestRootRequiresPaths(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	h := newHarness(t, "a.mp3", "b.mp3")
	_, err := h.run("", h.input, "--url", h.srv.URL, "--output", h.out, "--yes", "--config", "")
	require.NoError(t, err)

	out, err := h.run("", "report", h.out)
	require.NoError(t, err)
	assert.Contains(t, out, "Total files: 2")
	assert.Contains(t, out, "  - a.mp3 (30.0s)")

	out, err = h.run("", "report", "--output", h.out)
	require.NoError(t, err)
	assert.Contains(t, out, "Successful:  2")

	_, err = h.run("", "report", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	ok, err := confirm(strings.NewReader("  YES  \n"), &out, "Proceed? ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Proceed? ", out.String())
}

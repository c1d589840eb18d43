package batch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/client"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/discovery"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
	"github.com/nguyentantai21042004/cogniscribe-batch/internal/logger"
)

// TestRunAgainstPipelineServer drives discovery, the HTTP client and the controller
// against a fake pipeline endpoint that rejects one upload.
func TestRunAgainstPipelineServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/pipeline", func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		switch {
		case strings.HasPrefix(fh.Filename, "broken"):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "worker crashed"})
		case strings.HasSuffix(fh.Filename, ".wma"):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Unsupported audio format"})
		default:
			stem := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename))
			c.JSON(http.StatusOK, gin.H{
				"success":    true,
				"transcript": gin.H{"text": "lecture " + stem},
				"summary":    "## Key points\n- " + stem,
				"metadata":   gin.H{"duration": 90.0, "language": "en"},
				"ratio":      c.Query("ratio"),
			})
		}
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	in := t.TempDir()
	for _, name := range []string{"a-lecture.mp3", "broken.mp3", "c-lecture.WAV", "d.wma", "syllabus.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte("audio bytes"), 0644))
	}
	files := discovery.Find([]string{in})
	require.Len(t, files, 4)

	out := filepath.Join(t.TempDir(), "batch_output")
	c := client.New(client.Options{BaseURL: srv.URL}, logger.Nop())
	ctrl, err := New(Options{OutputDir: out, Request: domain.Request{Ratio: 0.05}}, c, logger.Nop())
	require.NoError(t, err)

	summary, err := ctrl.Run(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 180.0, summary.TotalDuration())

	onDisk, err := LoadSummary(filepath.Join(out, SummaryFilename))
	require.NoError(t, err)
	assert.Equal(t, summary.Files, onDisk.Files)

	full, err := os.ReadFile(filepath.Join(out, "a-lecture", ResultFilename))
	require.NoError(t, err)
	assert.Contains(t, string(full), `"ratio": "0.05"`)
	assert.DirExists(t, filepath.Join(out, "c-lecture"))
	assert.NoDirExists(t, filepath.Join(out, "broken"))
}

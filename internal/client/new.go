package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/logger"
)

// DefaultTimeout bounds one pipeline call; long lectures take minutes.
const DefaultTimeout = 10 * time.Minute

const pipelinePath = "/api/pipeline"

type implClient struct {
	endpoint string
	http     *http.Client
	logger   logger.Logger
}

// Options configures the pipeline client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client; its Timeout is left untouched.
	HTTPClient *http.Client
}

// New creates a Client for one batch run.
func New(opts Options, log logger.Logger) Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &implClient{
		endpoint: strings.TrimRight(opts.BaseURL, "/") + pipelinePath,
		http:     httpClient,
		logger:   log,
	}
}

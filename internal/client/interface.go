package client

import (
	"context"

	"github.com/nguyentantai21042004/cogniscribe-batch/internal/domain"
)

// Client submits one audio file to the remote pipeline endpoint.
type Client interface {
	ProcessFile(ctx context.Context, file domain.AudioFile, req domain.Request) (Result, error)
}

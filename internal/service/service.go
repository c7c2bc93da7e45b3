package service

import (
	"context"

	"github.com/ds124wfegd/mineru-extract/internal/entity"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/mimetypes"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/mineru"
)

type ExtractService interface {
	ExtractContent(ctx context.Context, in entity.InputParameters) (*entity.OutputResult, error)
}

// MimeLookup resolves a file extension to a MIME type.
type MimeLookup func(ext string) string

type extractService struct {
	client mineru.Client
	lookup MimeLookup
}

func NewExtractService(client mineru.Client, lookup MimeLookup) ExtractService {
	if lookup == nil {
		lookup = mimetypes.ByExtension
	}
	return &extractService{
		client: client,
		lookup: lookup,
	}
}

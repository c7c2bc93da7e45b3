package transport

import (
	"github.com/ds124wfegd/mineru-extract/internal/action"
	"github.com/ds124wfegd/mineru-extract/internal/service"
)

type ActionHandler struct {
	service   service.ExtractService
	catalog   *action.Catalog
	maxUpload int64
}

// NewActionHandler builds the handler. A non-positive maxUpload leaves
// request bodies unbounded.
func NewActionHandler(service service.ExtractService, catalog *action.Catalog, maxUpload int64) *ActionHandler {
	return &ActionHandler{
		service:   service,
		catalog:   catalog,
		maxUpload: maxUpload,
	}
}

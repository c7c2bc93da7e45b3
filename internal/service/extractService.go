package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ds124wfegd/mineru-extract/internal/entity"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/metrics"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/mineru"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/reqid"
	"github.com/sirupsen/logrus"
)

func (s *extractService) ExtractContent(ctx context.Context, in entity.InputParameters) (*entity.OutputResult, error) {
	if err := checkPresence(in); err != nil {
		metrics.RecordRun(metrics.OutcomeRejected)
		return nil, err
	}

	contentType := s.lookup(in.File.Extension)
	form := mineru.NewForm(in, contentType)

	log := logrus.WithFields(logrus.Fields{
		"request_id": reqid.FromContext(ctx),
		"filename":   in.File.Filename,
		"mime_type":  contentType,
		"backend":    in.Backend,
		"zip":        in.ResponseFormatZip,
	})
	log.Debug("sending document to MinerU")

	resp, err := s.client.ParseFile(ctx, in.APIServerURL, form)
	if err != nil {
		metrics.RecordRun(metrics.OutcomeFailed)
		log.WithError(err).Error("MinerU request failed")
		return nil, err
	}

	result, err := shapeResult(in, resp)
	if err != nil {
		metrics.RecordRun(metrics.OutcomeFailed)
		log.WithError(err).WithField("body_kind", resp.Kind.String()).Error("unexpected MinerU response")
		return nil, err
	}

	if result.IsZip() {
		metrics.RecordRun(metrics.OutcomeZip)
	} else {
		metrics.RecordRun(metrics.OutcomeJSON)
	}
	return result, nil
}

func checkPresence(in entity.InputParameters) error {
	switch {
	case in.APIServerURL == "":
		return fmt.Errorf("%w: apiServerUrl", entity.ErrMissingParameter)
	case in.File.Filename == "":
		return fmt.Errorf("%w: file.filename", entity.ErrMissingParameter)
	case len(in.File.Data) == 0:
		return fmt.Errorf("%w: file.data", entity.ErrMissingParameter)
	}
	return nil
}

// shapeResult turns the classified response into the action output: a
// base64 zip descriptor when a zip was requested, otherwise the unmodified
// body, wrapped in a JSON string when it is not JSON itself.
func shapeResult(in entity.InputParameters, resp *mineru.Response) (*entity.OutputResult, error) {
	if in.ResponseFormatZip {
		if resp.Kind != mineru.BodyBinary {
			return nil, &entity.FormatMismatchError{Expected: entity.ZipExtension, Got: resp.Kind.String()}
		}
		return &entity.OutputResult{File: &entity.ZipFile{
			Filename:  entity.ZipResultName(in.File.Filename),
			Data:      base64.StdEncoding.EncodeToString(resp.Body),
			Extension: entity.ZipExtension,
		}}, nil
	}

	if resp.Kind == mineru.BodyJSON && json.Valid(resp.Body) {
		return &entity.OutputResult{JSON: json.RawMessage(resp.Body)}, nil
	}
	text, err := json.Marshal(string(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("encode response body: %w", err)
	}
	return &entity.OutputResult{JSON: text}, nil
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, entity.ErrMissingParameter) || errors.Is(err, entity.ErrInvalidInput)
}

package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ds124wfegd/mineru-extract/internal/entity"
	"github.com/ds124wfegd/mineru-extract/internal/pkg/mineru"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	resp *mineru.Response
	err  error

	calls   int
	baseURL string
	form    *mineru.Form
}

func (f *fakeClient) ParseFile(ctx context.Context, apiServerURL string, form *mineru.Form) (*mineru.Response, error) {
	f.calls++
	f.baseURL = apiServerURL
	f.form = form
	return f.resp, f.err
}

func pdfInput() entity.InputParameters {
	return entity.InputParameters{
		APIServerURL:  "http://h",
		File:          entity.FilePayload{Filename: "a.pdf", Extension: "pdf", Data: []byte("%PDF")},
		Backend:       "pipeline",
		ParseMethod:   "auto",
		FormulaEnable: true,
		TableEnable:   true,
		ReturnMD:      true,
	}
}

func TestExtractContentJSON(t *testing.T) {
	body := []byte(`{"results":{"a":{"md_content":"# A"}},"version":"2.1"}`)
	client := &fakeClient{resp: &mineru.Response{StatusCode: 200, Kind: mineru.BodyJSON, Body: body}}
	svc := NewExtractService(client, nil)

	result, err := svc.ExtractContent(context.Background(), pdfInput())
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "http://h", client.baseURL)
	assert.Equal(t, "application/pdf", client.form.File.ContentType)
	assert.Equal(t, "a.pdf", client.form.File.Filename)
	assert.False(t, result.IsZip())
	assert.Equal(t, string(body), string(result.JSON))
}

func TestExtractContentJSONAnyShape(t *testing.T) {
	for _, body := range []string{`[1,2,3]`, `"just text"`, `42`, `null`, `{"markdown":"..."}`} {
		t.Run(body, func(t *testing.T) {
			client := &fakeClient{resp: &mineru.Response{StatusCode: 200, Kind: mineru.BodyJSON, Body: []byte(body)}}
			result, err := NewExtractService(client, nil).ExtractContent(context.Background(), pdfInput())
			require.NoError(t, err)
			assert.Equal(t, body, string(result.JSON))
		})
	}
}

func TestExtractContentZip(t *testing.T) {
	zipBytes := []byte("PK\x03\x04archive")
	client := &fakeClient{resp: &mineru.Response{StatusCode: 200, Kind: mineru.BodyBinary, Body: zipBytes}}
	in := pdfInput()
	in.ResponseFormatZip = true

	result, err := NewExtractService(client, nil).ExtractContent(context.Background(), in)
	require.NoError(t, err)

	require.True(t, result.IsZip())
	assert.Equal(t, &entity.ZipFile{
		Filename:  "a.pdf_mineru_result.zip",
		Data:      base64.StdEncoding.EncodeToString(zipBytes),
		Extension: "zip",
	}, result.File)

	v, ok := client.form.Value(mineru.FieldResponseFormatZip)
	require.True(t, ok)
	assert.Equal(t, "true", v)
}

func TestExtractContentFormatMismatch(t *testing.T) {
	tests := []struct {
		name     string
		zip      bool
		kind     mineru.BodyKind
		body     string
		expected string
	}{
		{name: "zip requested json received", zip: true, kind: mineru.BodyJSON, body: `{"error":"no zip"}`, expected: "zip"},
		{name: "zip requested text received", zip: true, kind: mineru.BodyJSON, body: `"done"`, expected: "zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{resp: &mineru.Response{StatusCode: 200, Kind: tt.kind, Body: []byte(tt.body)}}
			in := pdfInput()
			in.ResponseFormatZip = tt.zip

			_, err := NewExtractService(client, nil).ExtractContent(context.Background(), in)
			require.Error(t, err)

			var mismatch *entity.FormatMismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, tt.expected, mismatch.Expected)
		})
	}
}

func TestExtractContentNonJSONBodyAsString(t *testing.T) {
	tests := []struct {
		name string
		kind mineru.BodyKind
		body string
		want string
	}{
		{name: "plain text", kind: mineru.BodyBinary, body: "parsed ok", want: `"parsed ok"`},
		{name: "empty body", kind: mineru.BodyBinary, body: "", want: `""`},
		{name: "json header malformed body", kind: mineru.BodyJSON, body: `{"open":`, want: `"{\"open\":"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{resp: &mineru.Response{StatusCode: 200, Kind: tt.kind, Body: []byte(tt.body)}}

			result, err := NewExtractService(client, nil).ExtractContent(context.Background(), pdfInput())
			require.NoError(t, err)
			assert.False(t, result.IsZip())
			assert.Equal(t, tt.want, string(result.JSON))

			var decoded string
			require.NoError(t, json.Unmarshal(result.JSON, &decoded))
			assert.Equal(t, tt.body, decoded)
		})
	}
}

func TestExtractContentZipMismatchMessage(t *testing.T) {
	err := (&entity.FormatMismatchError{Expected: entity.ZipExtension, Got: "json"}).Error()
	assert.Equal(t, "expected ZIP file but got non-binary response", err)
}

func TestExtractContentPropagatesClientErrors(t *testing.T) {
	upstream := &entity.UpstreamStatusError{StatusCode: 503, Body: `{"detail":"busy"}`}
	client := &fakeClient{err: upstream}

	_, err := NewExtractService(client, nil).ExtractContent(context.Background(), pdfInput())
	require.Error(t, err)

	var statusErr *entity.UpstreamStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 503, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "busy")
}

func TestExtractContentPresenceChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.InputParameters)
	}{
		{name: "no server url", mutate: func(in *entity.InputParameters) { in.APIServerURL = "" }},
		{name: "no filename", mutate: func(in *entity.InputParameters) { in.File.Filename = "" }},
		{name: "no data", mutate: func(in *entity.InputParameters) { in.File.Data = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			in := pdfInput()
			tt.mutate(&in)

			_, err := NewExtractService(client, nil).ExtractContent(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, entity.ErrMissingParameter))
			assert.True(t, IsClientError(err))
			assert.Equal(t, 0, client.calls)
		})
	}
}

func TestExtractContentMimeFallback(t *testing.T) {
	client := &fakeClient{resp: &mineru.Response{StatusCode: 200, Kind: mineru.BodyJSON, Body: []byte(`{}`)}}
	svc := NewExtractService(client, nil)

	for _, ext := range []string{"", "unknownext"} {
		in := pdfInput()
		in.File.Extension = ext
		_, err := svc.ExtractContent(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", client.form.File.ContentType, ext)
	}
}

func TestExtractContentCustomLookup(t *testing.T) {
	client := &fakeClient{resp: &mineru.Response{StatusCode: 200, Kind: mineru.BodyJSON, Body: []byte(`{}`)}}
	svc := NewExtractService(client, func(string) string { return "application/x-custom" })

	_, err := svc.ExtractContent(context.Background(), pdfInput())
	require.NoError(t, err)
	assert.Equal(t, "application/x-custom", client.form.File.ContentType)
}

// a.pdf with backend=pipeline against a real HTTP endpoint returning
// {"markdown":"..."}.
func TestExtractContentEndToEnd(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/file_parse", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		fh := r.MultipartForm.File["files"][0]
		assert.Equal(t, "application/pdf", fh.Header.Get("Content-Type"))
		f, _ := fh.Open()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "%PDF", string(data))

		values := r.MultipartForm.Value
		assert.Equal(t, []string{"pipeline"}, values["backend"])
		assert.Equal(t, []string{"true"}, values["formula_enable"])
		assert.Equal(t, []string{"true"}, values["table_enable"])
		assert.Equal(t, []string{"true"}, values["return_md"])
		assert.Equal(t, []string{"false"}, values["return_middle_json"])
		assert.Equal(t, []string{"false"}, values["return_model_output"])
		assert.Equal(t, []string{"false"}, values["return_content_list"])
		assert.Equal(t, []string{"false"}, values["return_images"])
		assert.Equal(t, []string{"false"}, values["response_format_zip"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"markdown":"..."}`))
	}))
	defer srv.Close()

	in := pdfInput()
	in.APIServerURL = srv.URL

	result, err := NewExtractService(mineru.NewClient(0), nil).ExtractContent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.JSONEq(t, `{"markdown":"..."}`, string(result.JSON))
}

package mineru

import (
	"encoding/json"
	"mime"
	"strings"
)

type BodyKind int

const (
	BodyJSON BodyKind = iota + 1
	BodyBinary
)

func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Response is a file_parse reply with its body classified.
type Response struct {
	StatusCode  int
	ContentType string
	Kind        BodyKind
	Body        []byte
}

// classify decides the body kind from the response itself: the declared
// media type first, then the bytes when the header says nothing useful.
func classify(contentType string, body []byte) BodyKind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return BodyJSON
	case mediaType == "application/zip",
		mediaType == "application/x-zip-compressed",
		mediaType == "application/octet-stream":
		return BodyBinary
	}
	if json.Valid(body) {
		return BodyJSON
	}
	return BodyBinary
}

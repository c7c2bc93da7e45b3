package entity

import "encoding/json"

const (
	ZipExtension    = "zip"
	zipResultSuffix = "_mineru_result.zip"
)

type ZipFile struct {
	Filename  string `json:"filename"`
	Data      string `json:"data"`
	Extension string `json:"extension"`
}

// OutputResult holds exactly one of File (zip output) or JSON (raw body).
type OutputResult struct {
	File *ZipFile
	JSON json.RawMessage
}

func ZipResultName(filename string) string {
	return filename + zipResultSuffix
}

func (r OutputResult) IsZip() bool { return r.File != nil }

func (r OutputResult) MarshalJSON() ([]byte, error) {
	if r.File != nil {
		return json.Marshal(r.File)
	}
	if len(r.JSON) == 0 {
		return []byte("null"), nil
	}
	return r.JSON, nil
}

package mineru

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/ds124wfegd/mineru-extract/internal/entity"
)

// Multipart field names understood by the file_parse endpoint.
const (
	FieldFiles             = "files"
	FieldLangList          = "lang_list"
	FieldBackend           = "backend"
	FieldParseMethod       = "parse_method"
	FieldFormulaEnable     = "formula_enable"
	FieldTableEnable       = "table_enable"
	FieldServerURL         = "server_url"
	FieldReturnMD          = "return_md"
	FieldReturnMiddleJSON  = "return_middle_json"
	FieldReturnModelOutput = "return_model_output"
	FieldReturnContentList = "return_content_list"
	FieldReturnImages      = "return_images"
	FieldResponseFormatZip = "response_format_zip"
	FieldStartPageID       = "start_page_id"
	FieldEndPageID         = "end_page_id"
)

type Field struct {
	Name  string
	Value string
}

type FilePart struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Form is the outbound file_parse request body before encoding.
type Form struct {
	File   FilePart
	Fields []Field
}

// NewForm builds the form for in. Optional strings are only added when
// non-empty, page bounds only when set, and every boolean flag is always sent.
func NewForm(in entity.InputParameters, contentType string) *Form {
	f := &Form{
		File: FilePart{
			Filename:    in.File.Filename,
			ContentType: contentType,
			Data:        in.File.Data,
		},
	}

	f.addString(FieldLangList, in.LangList)
	f.addString(FieldBackend, in.Backend)
	f.addString(FieldParseMethod, in.ParseMethod)
	f.addBool(FieldFormulaEnable, in.FormulaEnable)
	f.addBool(FieldTableEnable, in.TableEnable)
	f.addString(FieldServerURL, in.ServerURL)
	f.addBool(FieldReturnMD, in.ReturnMD)
	f.addBool(FieldReturnMiddleJSON, in.ReturnMiddleJSON)
	f.addBool(FieldReturnModelOutput, in.ReturnModelOutput)
	f.addBool(FieldReturnContentList, in.ReturnContentList)
	f.addBool(FieldReturnImages, in.ReturnImages)
	f.addBool(FieldResponseFormatZip, in.ResponseFormatZip)
	f.addInt(FieldStartPageID, in.StartPageID)
	f.addInt(FieldEndPageID, in.EndPageID)

	return f
}

func (f *Form) addString(name, value string) {
	if value == "" {
		return
	}
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

func (f *Form) addBool(name string, value bool) {
	f.Fields = append(f.Fields, Field{Name: name, Value: strconv.FormatBool(value)})
}

func (f *Form) addInt(name string, value *int) {
	if value == nil {
		return
	}
	f.Fields = append(f.Fields, Field{Name: name, Value: strconv.Itoa(*value)})
}

// Value returns the first field with the given name.
func (f *Form) Value(name string) (string, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode writes the multipart body and returns it with its Content-Type,
// boundary included.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FieldFiles, quoteEscaper.Replace(f.File.Filename)))
	header.Set("Content-Type", f.File.ContentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(f.File.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write file data to form: %w", err)
	}

	for _, field := range f.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write %s field: %w", field.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return &body, writer.FormDataContentType(), nil
}

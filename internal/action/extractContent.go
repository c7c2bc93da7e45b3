package action

import (
	"github.com/ds124wfegd/mineru-extract/internal/entity"
)

const ExtractContentName = "extract_content"

// Property names of the extract_content action.
const (
	PropAPIServerURL      = "apiServerUrl"
	PropFile              = "file"
	PropLangList          = "langList"
	PropBackend           = "backend"
	PropServerURL         = "serverUrl"
	PropParseMethod       = "parseMethod"
	PropFormulaEnable     = "formulaEnable"
	PropTableEnable       = "tableEnable"
	PropReturnMD          = "returnMd"
	PropReturnMiddleJSON  = "returnMiddleJson"
	PropReturnModelOutput = "returnModelOutput"
	PropReturnContentList = "returnContentList"
	PropReturnImages      = "returnImages"
	PropResponseFormatZip = "responseFormatZip"
	PropStartPageID       = "startPageId"
	PropEndPageID         = "endPageId"
)

var langOptions = []Option{
	{Label: "Chinese & English (ch)", Value: "ch"},
	{Label: "Chinese server model (ch_server)", Value: "ch_server"},
	{Label: "Chinese lite model (ch_lite)", Value: "ch_lite"},
	{Label: "English", Value: "en"},
	{Label: "Korean", Value: "korean"},
	{Label: "Japanese", Value: "japan"},
	{Label: "Traditional Chinese", Value: "chinese_cht"},
	{Label: "Tamil", Value: "ta"},
	{Label: "Telugu", Value: "te"},
	{Label: "Georgian", Value: "ka"},
	{Label: "Latin", Value: "latin"},
	{Label: "Arabic", Value: "arabic"},
	{Label: "East Slavic", Value: "east_slavic"},
	{Label: "Cyrillic", Value: "cyrillic"},
	{Label: "Devanagari", Value: "devanagari"},
}

var backendOptions = []Option{
	{Label: "Pipeline", Value: "pipeline"},
	{Label: "VLM (transformers)", Value: "vlm-transformers"},
	{Label: "VLM (sglang engine)", Value: "vlm-sglang-engine"},
	{Label: "VLM (sglang client)", Value: "vlm-sglang-client"},
}

var parseMethodOptions = []Option{
	{Label: "Auto", Value: "auto"},
	{Label: "Text", Value: "txt"},
	{Label: "OCR", Value: "ocr"},
}

// ExtractContent returns the schema of the extract_content action.
// defaultAPIServerURL, when non-empty, becomes the default of apiServerUrl.
func ExtractContent(defaultAPIServerURL string) Action {
	apiServer := Property{
		Name:        PropAPIServerURL,
		DisplayName: "API Server URL",
		Description: "Base URL of the MinerU API server, e.g. http://localhost:8000",
		Type:        ShortText,
		Required:    true,
	}
	if defaultAPIServerURL != "" {
		apiServer.DefaultValue = defaultAPIServerURL
	}

	return Action{
		Name:        ExtractContentName,
		DisplayName: "Extract Content",
		Description: "Parse a document with MinerU and return its content as JSON or a ZIP archive",
		Props: []Property{
			apiServer,
			{Name: PropFile, DisplayName: "File", Description: "Document to parse (PDF or image)", Type: File, Required: true},
			{Name: PropLangList, DisplayName: "Language", Description: "OCR language hint", Type: StaticDropdown, Options: langOptions},
			{Name: PropBackend, DisplayName: "Backend", Description: "Parsing backend", Type: StaticDropdown, DefaultValue: "pipeline", Options: backendOptions},
			{Name: PropServerURL, DisplayName: "Backend Server URL", Description: "Server URL for the vlm-sglang-client backend", Type: ShortText},
			{Name: PropParseMethod, DisplayName: "Parse Method", Description: "Only used by the pipeline backend", Type: StaticDropdown, DefaultValue: "auto", Options: parseMethodOptions},
			{Name: PropFormulaEnable, DisplayName: "Enable Formula Parsing", Type: Checkbox, DefaultValue: true},
			{Name: PropTableEnable, DisplayName: "Enable Table Parsing", Type: Checkbox, DefaultValue: true},
			{Name: PropReturnMD, DisplayName: "Return Markdown", Type: Checkbox, DefaultValue: true},
			{Name: PropReturnMiddleJSON, DisplayName: "Return Middle JSON", Type: Checkbox, DefaultValue: false},
			{Name: PropReturnModelOutput, DisplayName: "Return Model Output", Type: Checkbox, DefaultValue: false},
			{Name: PropReturnContentList, DisplayName: "Return Content List", Type: Checkbox, DefaultValue: false},
			{Name: PropReturnImages, DisplayName: "Return Images", Type: Checkbox, DefaultValue: false},
			{Name: PropResponseFormatZip, DisplayName: "Return ZIP Archive", Description: "Return the result as a ZIP file instead of JSON", Type: Checkbox, DefaultValue: false},
			{Name: PropStartPageID, DisplayName: "Start Page", Description: "First page to parse, 0-based (server default 0)", Type: Number},
			{Name: PropEndPageID, DisplayName: "End Page", Description: "Last page to parse (server default 99999)", Type: Number},
		},
	}
}

// Input maps resolved extract_content values onto the invocation parameters.
func Input(v Values) entity.InputParameters {
	return entity.InputParameters{
		APIServerURL:      v.String(PropAPIServerURL),
		File:              v.File(PropFile),
		LangList:          v.String(PropLangList),
		Backend:           v.String(PropBackend),
		ServerURL:         v.String(PropServerURL),
		ParseMethod:       v.String(PropParseMethod),
		FormulaEnable:     v.Bool(PropFormulaEnable),
		TableEnable:       v.Bool(PropTableEnable),
		ReturnMD:          v.Bool(PropReturnMD),
		ReturnMiddleJSON:  v.Bool(PropReturnMiddleJSON),
		ReturnModelOutput: v.Bool(PropReturnModelOutput),
		ReturnContentList: v.Bool(PropReturnContentList),
		ReturnImages:      v.Bool(PropReturnImages),
		ResponseFormatZip: v.Bool(PropResponseFormatZip),
		StartPageID:       v.Int(PropStartPageID),
		EndPageID:         v.Int(PropEndPageID),
	}
}

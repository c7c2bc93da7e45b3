package entity

// FilePayload is the document handed to the action. Data travels as base64
// in JSON.
type FilePayload struct {
	Filename  string `json:"filename"`
	Extension string `json:"extension,omitempty"`
	Data      []byte `json:"base64"`
}

type InputParameters struct {
	APIServerURL string      `json:"apiServerUrl"`
	File         FilePayload `json:"file"`

	LangList    string `json:"langList,omitempty"`
	Backend     string `json:"backend,omitempty"`
	ServerURL   string `json:"serverUrl,omitempty"`
	ParseMethod string `json:"parseMethod,omitempty"`

	FormulaEnable     bool `json:"formulaEnable"`
	TableEnable       bool `json:"tableEnable"`
	ReturnMD          bool `json:"returnMd"`
	ReturnMiddleJSON  bool `json:"returnMiddleJson"`
	ReturnModelOutput bool `json:"returnModelOutput"`
	ReturnContentList bool `json:"returnContentList"`
	ReturnImages      bool `json:"returnImages"`
	ResponseFormatZip bool `json:"responseFormatZip"`

	// nil means the field is not sent; an explicit 0 is.
	StartPageID *int `json:"startPageId,omitempty"`
	EndPageID   *int `json:"endPageId,omitempty"`
}

func IntPtr(v int) *int { return &v }

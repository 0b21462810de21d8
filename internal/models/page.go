package models

// PageRole classifies what a page contributes to the document.
type PageRole string

const (
	RoleTitle       PageRole = "title"
	RoleGeneralData PageRole = "general_data"
	RoleDrawing     PageRole = "drawing"
	RoleSpec        PageRole = "specification"
	RoleDetails     PageRole = "details"
	RoleMainContent PageRole = "main_content"
	RoleUnknown     PageRole = "unknown"
)

// Page is one unit of extracted document text. RawText may be empty;
// Role and Confidence are filled in by the classifier and the page is
// read-only afterward.
type Page struct {
	PageNumber int      `json:"pageNumber"`
	RawText    string   `json:"-"`
	Role       PageRole `json:"role"`
	Confidence float64  `json:"confidence"`
}

// StampInfo is the structured metadata recovered from a drawing sheet's
// title block. Every field is independently optional; partial extraction
// is the normal case.
type StampInfo struct {
	HasStamp    bool    `json:"hasStamp"`
	SheetNumber string  `json:"sheetNumber,omitempty"`
	Revision    string  `json:"revision,omitempty"`
	Scale       string  `json:"scale,omitempty"`
	ProjectCode string  `json:"projectCode,omitempty"`
	ObjectName  string  `json:"objectName,omitempty"`
	Stage       string  `json:"stage,omitempty"`
	Mark        string  `json:"mark,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// ProjectInfo is the document-level metadata recovered from the first page.
type ProjectInfo struct {
	ProjectCode string  `json:"projectCode,omitempty"`
	ProjectName string  `json:"projectName,omitempty"`
	Stage       string  `json:"stage,omitempty"`
	Mark        string  `json:"mark,omitempty"`
	Confidence  float64 `json:"confidence"`
}

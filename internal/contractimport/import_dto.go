package contractimport

// ImportMetadata carries optional operator-supplied overrides alongside the
// multipart file. A supplied value wins over the extracted one.
type ImportMetadata struct {
	ContractNumber string `form:"contract_number" binding:"omitempty,max=50"`
	CustomerEmail  string `form:"customer_email" binding:"omitempty,email"`
}

// ImportRequest carries one uploaded document through the pipeline.
type ImportRequest struct {
	FileName       string
	Data           []byte
	ContentType    string
	InitiatedBy    string
	ContractNumber string
	CustomerEmail  string
}

// ImportResult is always returned in full, success or not, so a reviewer can
// complete a low-confidence record manually.
type ImportResult struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`

	ContractID string `json:"contract_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	LocationID string `json:"location_id,omitempty"`

	ContractNumber     string `json:"contract_number,omitempty"`
	CustomerName       string `json:"customer_name,omitempty"`
	GuardsRequired     int    `json:"guards_required"`
	ShiftTemplateCount int    `json:"shift_template_count"`
	PeriodNumber       int    `json:"period_number,omitempty"`

	RawText    string   `json:"raw_text"`
	Warnings   []string `json:"warnings,omitempty"`
	Confidence int      `json:"confidence"`
}

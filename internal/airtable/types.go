package airtable

// Record is a single row as returned by the Airtable list-records endpoint.
// Fields is schemaless; the base owns the field names, not this tool.
type Record struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// listResponse is one page of the list-records endpoint. A non-empty Offset
// means more pages follow.
type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// errorResponse is Airtable's error envelope. The error value is either a
// plain string or an object with type/message, depending on the endpoint.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

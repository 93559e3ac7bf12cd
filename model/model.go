package model

// IPO is a single listing entry as returned by the provider.
type IPO struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol,omitempty"`
	TypeTag        string `json:"ipo_type_tag"`
	IssueStartDate string `json:"issue_start_date"`
	IssueEndDate   string `json:"issue_end_date"`
	PriceRange     string `json:"price_range,omitempty"`
	LotSize        int    `json:"lot_size,omitempty"`
}

// Listing is the provider response envelope: {"data": {"items": [...]}}.
type Listing struct {
	Data *struct {
		Items []IPO `json:"items"`
	} `json:"data"`
}

type Match struct {
	Name      string
	StartDate string
	EndDate   string
}

type Notification struct {
	Topic   string
	Title   string
	Message string
}

// Result is what a single invocation reports back to its trigger.
type Result struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type SuccessBody struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

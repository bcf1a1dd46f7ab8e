package model

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

// SearchResponse is the API response for a search.
type SearchResponse struct {
	QueryID        string         `json:"queryId"`
	Results        []RankedResult `json:"results"`
	QuotaUnitsUsed int            `json:"quotaUnitsUsed"`
}

// FeedbackRequest is the body of POST /api/feedback.
type FeedbackRequest struct {
	QueryID        string     `json:"queryId" validate:"required,max=32"`
	VideoID        string     `json:"videoId" validate:"required,max=16"`
	Feedback       string     `json:"feedback" validate:"required,oneof=thumbs_up thumbs_down none"`
	CompositeScore float64    `json:"compositeScore" validate:"gte=0,lte=1"`
	RawSignals     RawSignals `json:"rawSignals"`
}

// ClickRequest is the body of POST /api/click.
type ClickRequest struct {
	QueryID     string `json:"queryId" validate:"required,max=32"`
	VideoID     string `json:"videoId" validate:"required,max=16"`
	ClickedRank *int   `json:"clickedRank" validate:"required,gte=0"`
}

// QuotaResponse is the API response for GET /api/quota.
type QuotaResponse struct {
	UnitsUsedToday int     `json:"unitsUsedToday"`
	DailyLimit     int     `json:"dailyLimit"`
	PercentUsed    float64 `json:"percentUsed"`
}

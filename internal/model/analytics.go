package model

// AnalyticsPeriod is one of "7d", "30d", "90d" or "all".
type AnalyticsPeriod string

// AnalyticsSummary holds per-period averages.
type AnalyticsSummary struct {
	SearchesPerDay      float64 `json:"searchesPerDay"`
	NullSearchPercent   float64 `json:"nullSearchPercent"`
	ThumbsUpPerSearch   float64 `json:"thumbsUpPerSearch"`
	ThumbsDownPerSearch float64 `json:"thumbsDownPerSearch"`
	ClicksPerSearch     float64 `json:"clicksPerSearch"`
	APIUnitsPerDay      int     `json:"apiUnitsPerDay"`
}

// TimeSeriesDataPoint is one day of analytics.
type TimeSeriesDataPoint struct {
	Date                string  `json:"date"`
	Searches            int     `json:"searches"`
	NullSearchPercent   float64 `json:"nullSearchPercent"`
	ThumbsUpPerSearch   float64 `json:"thumbsUpPerSearch"`
	ThumbsDownPerSearch float64 `json:"thumbsDownPerSearch"`
	ClicksPerSearch     float64 `json:"clicksPerSearch"`
	APIUnits            int     `json:"apiUnits"`
}

// AnalyticsResponse is the API response for GET /api/analytics.
type AnalyticsResponse struct {
	Period     AnalyticsPeriod       `json:"period"`
	Summary    AnalyticsSummary      `json:"summary"`
	TimeSeries []TimeSeriesDataPoint `json:"timeSeries"`
}

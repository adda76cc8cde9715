// Package api holds the JSON bodies shared by the HTTP surfaces of both services.
package api

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginRequiredResponse tells a browser client where to authenticate.
type LoginRequiredResponse struct {
	Error      string `json:"error"`
	RedirectTo string `json:"redirect_to"`
}

// RemainingAnalysesResponse reports the caller's quota for the current UTC day.
type RemainingAnalysesResponse struct {
	RemainingAnalyses int   `json:"remaining_analyses"`
	DailyLimit        int   `json:"daily_limit"`
	ResetsInSeconds   int64 `json:"resets_in_seconds"`
}

// AnalyzeAcceptedResponse is returned by the analysis service on success.
type AnalyzeAcceptedResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Ticker            string `json:"ticker"`
	ArticleID         string `json:"article_id,omitempty"`
	RemainingAnalyses int    `json:"remaining_analyses"`
}

// AnalyzeResponse is returned by the web front-end after proxying an analysis.
type AnalyzeResponse struct {
	Status            string `json:"status"`
	Message           string `json:"message"`
	Ticker            string `json:"ticker"`
	RemainingAnalyses int    `json:"remaining_analyses"`
	RedirectTo        string `json:"redirect_to"`
}

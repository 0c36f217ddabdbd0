package dto

type RunTriggerRequest struct {
	Source  string `json:"source"`
	MaxJobs int    `json:"max_jobs"`
	Query   string `json:"query"`
}

type RunResultResponse struct {
	Success        bool   `json:"success"`
	Source         string `json:"source"`
	ScrapedCount   int    `json:"scraped_count"`
	DuplicateCount int    `json:"duplicate_count"`
	PatchedCount   int    `json:"patched_count"`
	RejectedCount  int    `json:"rejected_count"`
	ErrorCount     int    `json:"error_count"`
	Message        string `json:"message"`
}

type ScrapeRunResponse struct {
	ID             string  `json:"id"`
	Source         string  `json:"source"`
	Status         string  `json:"status"`
	StartedAt      string  `json:"started_at"`
	FinishedAt     *string `json:"finished_at"`
	ScrapedCount   int     `json:"scraped_count"`
	DuplicateCount int     `json:"duplicate_count"`
	ErrorCount     int     `json:"error_count"`
	Message        string  `json:"message"`
}

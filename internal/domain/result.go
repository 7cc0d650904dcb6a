package domain

import "encoding/json"

// ProcessingResult is the output of one completed job.
// PredictionData is kept raw: its shape is not trusted.
type ProcessingResult struct {
	ID              ID              `json:"id"`
	JobID           ID              `json:"job_id"`
	AIScore         *float64        `json:"ai_score"`
	ConfidenceLevel *float64        `json:"confidence_level"`
	PredictionData  json.RawMessage `json:"prediction_data"`
	CreatedAt       *Timestamp      `json:"created_at"`
}

type Export struct {
	ID         ID         `json:"id"`
	Result     ID         `json:"result"`
	ExportType string     `json:"export_type"`
	CreatedAt  *Timestamp `json:"created_at"`
}

type UserFile struct {
	ID         ID         `json:"id"`
	Filename   string     `json:"filename"`
	FileType   string     `json:"file_type"`
	FileSize   int64      `json:"file_size"`
	UploadDate *Timestamp `json:"upload_date"`
	Status     string     `json:"status"`
}

// FileProcessing is the job bundle returned for a file: its latest job
// and, when that job completed, the results.
type FileProcessing struct {
	File      *UserFile          `json:"file"`
	Job       *ProcessingJob     `json:"job"`
	Results   []ProcessingResult `json:"results"`
	Exports   []Export           `json:"exports"`
	IsLoading bool               `json:"isLoading"`
	Error     *string            `json:"error"`
}

type JobWithResults struct {
	Job     *ProcessingJob     `json:"job"`
	Results []ProcessingResult `json:"results"`
}

type ExecuteResponse struct {
	Status      string          `json:"status"`
	JobID       ID              `json:"job_id"`
	ResultID    ID              `json:"result_id"`
	Exports     []Export        `json:"exports"`
	ModelOutput json.RawMessage `json:"model_output"`
}

package domain

// Outcome is the terminal state of one ResumeOrStart run for a file.
type Outcome struct {
	FileID ID
	Job    *ProcessingJob    // last applied snapshot, nil if none was fetched
	Result *ProcessingResult // filled in case of a success
	Error  error             // filled in case of an error
}

package resume

// ParseResumeRequest carries an uploaded document into the pipeline. The
// format is derived from the filename's extension, never sniffed.
type ParseResumeRequest struct {
	Filename string
	Data     []byte
}

// DeleteResumeResponse confirms a deletion.
type DeleteResumeResponse struct {
	Message string `json:"message"`
}

package httpdto

import "memories-chain/internal/domain/memory"

// PhotoRef carries a previously ingested file into a memory form. Field names
// match what POST /files returned.
type PhotoRef struct {
	URL      string `json:"url"`
	CID      string `json:"cid"`
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// CreateMemoryFormRequest is used for POST /memory-forms
type CreateMemoryFormRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedBy   string     `json:"created_by"`
	Owners      []string   `json:"owners,omitempty"`
	Photos      []PhotoRef `json:"photos,omitempty"`
}

// CreateMemoryFormResponse reports the persisted form plus which best-effort
// secondary writes landed, so clients can retry the degraded parts.
type CreateMemoryFormResponse struct {
	Form          memory.MemoryForm `json:"form"`
	OwnersWritten bool              `json:"owners_written"`
	PhotosWritten bool              `json:"photos_written"`
}

// ListMemoryFormsResponse is returned by GET /memory-forms
type ListMemoryFormsResponse struct {
	Forms []memory.MemoryForm `json:"forms"`
}

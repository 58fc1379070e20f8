package httpdto

// UploadResponse is returned by POST /files. Key casing mirrors what the
// memory-form composer sends back in PhotoRef.
type UploadResponse struct {
	URL      string `json:"url"`
	CID      string `json:"cid"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

package dto

// ArchiveRequest is the normalized form of a download-zip call. GET
// (repeated files= params) and POST (JSON body) both produce this.
type ArchiveRequest struct {
	EventCode string   `json:"event_code"`
	Files     []string `json:"files"`
}

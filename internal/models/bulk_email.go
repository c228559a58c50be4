package models

// MaxBulkEmailRecipients caps one announcement send
const MaxBulkEmailRecipients = 200

// BulkEmailRequest is the JSON form of an announcement. The multipart form
// uses the same field names plus a "file" CSV upload.
type BulkEmailRequest struct {
	Recipients string `json:"recipients" form:"recipients"`
	Subject    string `json:"subject" form:"subject" binding:"required,min=3,max=200"`
	Message    string `json:"message" form:"message" binding:"required,min=1,max=20000"`
}

// RecipientReport describes how a recipient list was parsed
type RecipientReport struct {
	Accepted          []string `json:"accepted"`
	Dropped           []string `json:"dropped"`
	DuplicatesRemoved int      `json:"duplicatesRemoved"`
}

// BulkEmailResult is returned after an announcement is queued
type BulkEmailResult struct {
	Queued            int      `json:"queued"`
	Dropped           []string `json:"dropped"`
	DuplicatesRemoved int      `json:"duplicatesRemoved"`
}

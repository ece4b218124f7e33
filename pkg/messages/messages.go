// Package messages centralizes HTTP-response and CLI message literals so they
// can be reused across the code-base and kept consistent.  Constants are
// grouped by functional area (upload server, CLI, configuration).
package messages

// HTTP response and CLI message constants.
const (
	// Upload server response texts
	RespUnauthorized        = "Unauthorized"
	RespNoFileUploaded      = "No file uploaded"
	RespServerMisconfigured = "Server configuration error"
	RespMalformedUpload     = "Malformed upload: %v"
	RespRenameFailed        = "Failed to rename file: %v"

	// Per-file fragments of the upload results page
	RespUploadSucceeded = "<p>File: %s uploaded successfully! <br>Download: <a href='%s'>%s</a> <br>Expires in: %d seconds</p>"
	RespUploadFailed    = "<p>Upload failed for %s: %v</p>"

	// CLI output
	MsgUploadedTo   = "Uploaded: %s -> %s"
	MsgNoFilesFound = "No files found"
	MsgFoundFiles   = "Found %d file(s):"
	MsgListEntry    = "%d. %s (%d bytes, modified: %s)"
	MsgDeletedFile  = "Deleted: %s"
	MsgSavedTo      = "Saved to: %s"

	// Configuration errors
	ErrCredentialsRequired = "access key and secret key must be provided via flags or environment variables"
)

package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	MaxFolderNameLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	MaxDocumentTitleLength = 255

	// MaxDocumentIDLength bounds caller-assigned document ids.
	MaxDocumentIDLength = 128

	// MaxUploadSize is the largest file accepted by the upload endpoint (10MB).
	MaxUploadSize = 10 << 20

	// MaxSearchResults caps SearchDocuments.
	MaxSearchResults = 100
)

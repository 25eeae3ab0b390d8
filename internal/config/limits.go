package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxQuestionTitleLength is the maximum length for question titles.
	MaxQuestionTitleLength = 255

	// MaxCommentLength is the maximum length for comment content.
	// Comments are short discussion entries, not documents.
	MaxCommentLength = 500

	// MaxTreeDepth bounds ancestor-chain walks. A stored cycle would
	// otherwise loop forever; any legitimate tree is far shallower.
	MaxTreeDepth = 100
)

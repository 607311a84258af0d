package repositories

// Extractor abstracts document text extraction.
type Extractor interface {
	// ExtractText returns the plain text of the document at path.
	ExtractText(path string) (string, error)
}

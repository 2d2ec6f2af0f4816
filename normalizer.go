package tickerlens

// Normalizer turns a fetched page into a canonical document record.
type Normalizer interface {
	// Normalize extracts the title, body text, host, language, and
	// publish time from raw HTML. Pages whose extracted body text is
	// shorter than MinArticleLength are not articles; Normalize returns
	// EREJECTED for them. Normalize is a pure transformation with no
	// side effects.
	Normalize(rawHTML string, sourceURL string) (*Document, error)
}

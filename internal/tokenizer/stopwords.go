package tokenizer

// stopwords is the English stopword list filtered out of content-similarity
// documents. Kept small on purpose: over-aggressive filtering hurts short
// bios more than it helps long job descriptions.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "been", "but", "by",
		"for", "from", "had", "has", "have", "in", "into", "is", "it",
		"its", "of", "on", "or", "our", "such", "that", "the", "their",
		"then", "there", "these", "they", "this", "to", "was", "we",
		"were", "will", "with", "you", "your",
	} {
		stopwords[w] = struct{}{}
	}
}

package tokenize

// Stopwords is a read-only set of words excluded from similarity and
// keyword computations.
type Stopwords map[string]struct{}

// Contains reports whether w is a stopword.
func (s Stopwords) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// DefaultStopwords returns the built-in bilingual stopword table.
func DefaultStopwords() Stopwords {
	words := []string{
		// Chinese
		"的", "了", "和", "是", "就", "都", "而", "及", "与", "这", "那", "有", "在",
		"中", "为", "对", "到", "以", "等", "上", "下", "由", "于", "从", "之", "或",
		"也", "如", "但", "并", "很", "再", "已", "所", "然", "没", "去", "能", "好",
		"还", "只", "会", "多", "于是", "吧", "呢", "啊", "哦", "嗯", "这样", "那样",
		// English
		"the", "a", "an", "and", "or", "but", "if", "because", "as", "what",
		"which", "this", "that", "these", "those", "then", "just", "so", "than",
		"such", "both", "through", "about", "for", "is", "of", "while", "during",
		"to", "from", "in", "out", "on", "off", "over", "under", "again", "once",
		"here", "there", "when", "where", "why", "how", "all", "any", "each",
	}

	s := make(Stopwords, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

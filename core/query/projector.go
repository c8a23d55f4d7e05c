package query

// Project applies a selection tree to an already-fetched value, returning a
// partial copy containing only the selected keys. No network calls are made;
// this is a pure transformation of in-memory data.
//
// The tree is a strict whitelist: keys not named in it never appear in the
// output, and selected keys absent from the source are omitted rather than
// null-filled. A true leaf copies the field verbatim; a nested tree recurses
// into an object value, or element-wise into a slice value. Values that are
// neither objects nor slices pass through untouched.
func Project(v any, sel Selection) any {
	if sel == nil {
		return v
	}
	switch src := v.(type) {
	case Document:
		return projectDocument(src, sel)
	case []Document:
		out := make([]Document, len(src))
		for i, d := range src {
			out[i] = projectDocument(d, sel)
		}
		return out
	case []any:
		out := make([]any, len(src))
		for i, e := range src {
			out[i] = Project(e, sel)
		}
		return out
	default:
		return v
	}
}

// ProjectDocuments projects a slice of documents through the tree.
func ProjectDocuments(docs []Document, sel Selection) []Document {
	if sel == nil {
		return docs
	}
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = projectDocument(d, sel)
	}
	return out
}

func projectDocument(doc Document, sel Selection) Document {
	out := Document{}
	for key, rule := range sel {
		value, present := doc[key]
		if !present {
			continue
		}
		switch r := rule.(type) {
		case bool:
			if r {
				out[key] = value
			}
		case Selection:
			out[key] = Project(value, r)
		case map[string]any:
			out[key] = Project(value, Selection(r))
		}
	}
	return out
}

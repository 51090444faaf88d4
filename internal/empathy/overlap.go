package empathy

import "sort"

// calculateLanguageOverlap compares the language sets of the two repositories.
// Candidates with many languages outside the reference set lose 10% for lack
// of focus. With an empty reference set the result keeps the historical shape:
// zero score, empty overlap and missing, and no extra field at all.
func calculateLanguageOverlap(referenceLangs, candidateLangs []string) LanguageOverlap {
	if len(referenceLangs) == 0 {
		return LanguageOverlap{
			Score:   0,
			Overlap: []string{},
			Missing: []string{},
		}
	}

	refSet := toSet(referenceLangs)
	candSet := toSet(candidateLangs)

	overlap := make([]string, 0)
	missing := make([]string, 0)
	extra := make([]string, 0)

	for lang := range refSet {
		if candSet[lang] {
			overlap = append(overlap, lang)
		} else {
			missing = append(missing, lang)
		}
	}
	for lang := range candSet {
		if !refSet[lang] {
			extra = append(extra, lang)
		}
	}

	sort.Strings(overlap)
	sort.Strings(missing)
	sort.Strings(extra)

	score := float64(len(overlap)) / float64(len(referenceLangs)) * 100

	if len(extra) > 0 && float64(len(extra)) > 0.5*float64(len(referenceLangs)) {
		score *= 0.9
	}

	return LanguageOverlap{
		Score:   score,
		Overlap: overlap,
		Missing: missing,
		Extra:   extra,
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

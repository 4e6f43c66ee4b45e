package countrylink

import (
	"github.com/antzucaro/matchr"

	"covidwatch-backend/lib/textutil"
)

// Link pairs a scraped location name with a canonical one. Confidence
// is 1 for matches that are exact after normalization, otherwise the
// Jaro-Winkler similarity of the normalized names.
type Link struct {
	Left       string
	Right      string
	Confidence float64
}

// LinkNames pairs every scraped name with its best canonical
// counterpart: exact matches after normalization first, then the most
// similar remaining name. Pairing is greedy, one-to-one and
// deterministic.
func LinkNames(scraped, canonical []string) []Link {
	swapped := false
	left, right := scraped, canonical
	if len(right) < len(left) {
		left, right = right, left
		swapped = true
	}

	normLeft := normalizeAll(left)
	normRight := normalizeAll(right)

	var result []Link
	matchedLeft := make(map[int]bool)
	matchedRight := make(map[int]bool)

	emit := func(l, r int, confidence float64) {
		link := Link{Left: left[l], Right: right[r], Confidence: confidence}
		if swapped {
			link.Left, link.Right = link.Right, link.Left
		}
		result = append(result, link)
		matchedLeft[l] = true
		matchedRight[r] = true
	}

	for l := range left {
		for r := range right {
			if matchedRight[r] {
				continue
			}
			if normLeft[l] == normRight[r] {
				emit(l, r, 1)
				break
			}
		}
	}

	for l := range left {
		if matchedLeft[l] {
			continue
		}

		bestSimilarity := 0.0
		bestRight := -1
		for r := range right {
			if matchedRight[r] {
				continue
			}
			similarity := matchr.JaroWinkler(normLeft[l], normRight[r], false)
			if similarity > bestSimilarity {
				bestSimilarity = similarity
				bestRight = r
			}
		}

		if bestRight >= 0 {
			emit(l, bestRight, bestSimilarity)
		}
	}

	return result
}

func normalizeAll(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = textutil.NormalizeLocation(name)
	}
	return out
}

package lpextract

// UsableConfidence is the threshold above which a structured record is
// considered usable downstream. Enforcing it is caller policy: the
// structured extractor itself never gates on it, callers below the
// threshold fall back to the plain extraction text.
const UsableConfidence = 0.5

// Confidence computes the deterministic [0,1] quality score for an
// extraction's fields.
//
// completeness is the fraction of populated fields. quality awards 0.25
// each for: a product name, a description longer than 20 characters, any
// key features, and a brand or category. The final score is
// 0.7*completeness + 0.3*quality, clamped to [0,1]. An empty fields
// mapping scores exactly 0.
func Confidence(fields Fields) float64 {
	if len(fields) == 0 {
		return 0
	}

	nonEmpty := 0
	for _, v := range fields {
		if fieldPopulated(v) {
			nonEmpty++
		}
	}
	completeness := float64(nonEmpty) / float64(len(fields))

	quality := 0.0
	if fields.NonEmpty("product_name") {
		quality += 0.25
	}
	if len(fields.String("product_description")) > 20 {
		quality += 0.25
	}
	if fields.NonEmpty("key_features") {
		quality += 0.25
	}
	if fields.NonEmpty("brand_name") || fields.NonEmpty("category") {
		quality += 0.25
	}

	confidence := completeness*0.7 + quality*0.3
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

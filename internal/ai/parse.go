package ai

import "strings"

// ParseAnalysisResponse splits a free-text vision model response into
// per-frame descriptions and key moments using line markers. Lines
// mentioning "key moment" or "important" open the key-moments list; lines
// mentioning "frame" or "scene" open the descriptions list; other
// non-trivial lines follow whichever list was opened last. A response with
// no markers at all is kept whole as a single description.
//
// The heuristic is deliberately crude; it mirrors how the model is
// prompted, not any structured output format.
func ParseAnalysisResponse(response string) (descriptions, keyMoments []string) {
	const (
		targetNone = iota
		targetDescriptions
		targetKeyMoments
	)

	sawMarker := false
	active := targetNone

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "key moment") || strings.Contains(lower, "important"):
			keyMoments = append(keyMoments, line)
			active = targetKeyMoments
			sawMarker = true
		case strings.Contains(lower, "frame") || strings.Contains(lower, "scene"):
			descriptions = append(descriptions, line)
			active = targetDescriptions
			sawMarker = true
		default:
			if len(line) <= 10 {
				continue
			}
			switch active {
			case targetKeyMoments:
				keyMoments = append(keyMoments, line)
			case targetDescriptions:
				descriptions = append(descriptions, line)
			}
		}
	}

	if !sawMarker {
		trimmed := strings.TrimSpace(response)
		if trimmed != "" {
			return []string{trimmed}, nil
		}
		return nil, nil
	}

	return descriptions, keyMoments
}

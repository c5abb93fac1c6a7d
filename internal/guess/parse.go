package guess

import (
	"regexp"
	"strconv"
	"strings"

	"mediaid/internal/media"
)

var (
	tokenSplit      = regexp.MustCompile(`[.\s_\-\[\]\(\)\{\}\+,;:]+`)
	seasonEpisodeRe = regexp.MustCompile(`(?i)^s(\d{1,2})e(\d{1,3})$`)
	crossFormRe     = regexp.MustCompile(`(?i)^(\d{1,2})x(\d{1,3})$`)
	seasonOnlyRe    = regexp.MustCompile(`(?i)^s(\d{1,2})$`)
	episodeOnlyRe   = regexp.MustCompile(`(?i)^e(\d{1,3})$`)
	yearTokenRe     = regexp.MustCompile(`^(18|19|20)\d{2}$`)
	trailingYearRe  = regexp.MustCompile(`\s((18|19|20)\d{2})$`)
)

// candidate is one parsed interpretation of a path segment.
type candidate struct {
	info  *media.Info
	score int
	index int
}

func tokenize(s string) []string {
	parts := tokenSplit.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func meaningfulCount(segment string) int {
	n := 0
	for _, tok := range tokenize(stripExtension(segment)) {
		if meaningfulToken(tok) {
			n++
		}
	}
	return n
}

// stripExtension removes a trailing known container or image extension.
func stripExtension(segment string) string {
	if dot := strings.LastIndex(segment, "."); dot > 0 {
		ext := segment[dot+1:]
		if isContainerExtension(ext) || isImageExtension(ext) {
			return segment[:dot]
		}
	}
	return segment
}

func imageSidecar(segment string) bool {
	dot := strings.LastIndex(segment, ".")
	if dot <= 0 {
		return false
	}
	if !isImageExtension(segment[dot+1:]) {
		return false
	}
	return hasAssetToken(segment[:dot])
}

// parseSegment interprets one candidate string. It never fails; a string
// with no usable tokens yields a record with an empty title.
func parseSegment(segment string) *media.Info {
	tokens := tokenize(stripExtension(segment))
	info := &media.Info{}

	var titleTokens []string
	titleOpen := true
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		lower := strings.ToLower(tok)

		if m := seasonEpisodeRe.FindStringSubmatch(tok); m != nil {
			info.Season = atoi(m[1])
			info.Episode = atoi(m[2])
			titleOpen = false
			continue
		}
		if m := crossFormRe.FindStringSubmatch(tok); m != nil {
			info.Season = atoi(m[1])
			info.Episode = atoi(m[2])
			titleOpen = false
			continue
		}
		if lower == "season" && i+1 < len(tokens) {
			if n, err := strconv.Atoi(tokens[i+1]); err == nil {
				info.Season = n
				i++
				titleOpen = false
				continue
			}
		}
		if lower == "episode" && i+1 < len(tokens) {
			if n, err := strconv.Atoi(tokens[i+1]); err == nil {
				info.Episode = n
				i++
				titleOpen = false
				continue
			}
		}
		if info.Season > 0 {
			if m := episodeOnlyRe.FindStringSubmatch(tok); m != nil {
				info.Episode = atoi(m[1])
				titleOpen = false
				continue
			}
		}
		if m := seasonOnlyRe.FindStringSubmatch(tok); m != nil && len(tokens) > 1 {
			info.Season = atoi(m[1])
			titleOpen = false
			continue
		}
		if yearTokenRe.MatchString(tok) {
			year := atoi(tok)
			if media.PlausibleYear(year) && info.Year == 0 {
				info.Year = year
				titleOpen = false
				continue
			}
		}
		if isReleaseTag(tok) || isContainerExtension(tok) {
			titleOpen = false
			continue
		}
		if titleOpen {
			titleTokens = append(titleTokens, tok)
		}
	}

	info.Title = strings.Join(titleTokens, " ")
	applyTrailingYear(info)

	switch {
	case info.Season > 0 || info.Episode > 0:
		info.MediaType = media.TypeTV
	case info.Year != 0:
		info.MediaType = media.TypeMovie
	}
	if info.Title != "" {
		info.OriginalTitle = info.Title
		info.DeriveSearchableReference()
	}
	return info
}

// applyTrailingYear strips a trailing 4-digit year from the title and
// promotes it to the year field when that is still empty.
func applyTrailingYear(info *media.Info) {
	m := trailingYearRe.FindStringSubmatch(info.Title)
	if m == nil {
		return
	}
	year := atoi(m[1])
	if year < 1888 || year > 2100 {
		return
	}
	info.Title = strings.TrimSpace(strings.TrimSuffix(info.Title, m[0]))
	if info.Year == 0 {
		info.Year = year
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimLeft(s, "0 "))
	return n
}

func scoreCandidate(segment string, info *media.Info, indexFromDeepest int) int {
	score := 0
	titleMeaningful := 0
	extensionInTitle := 0
	for _, tok := range tokenize(info.Title) {
		if meaningfulToken(tok) {
			titleMeaningful++
		}
		if isContainerExtension(tok) || isImageExtension(tok) {
			extensionInTitle++
		}
	}
	score += 10 * titleMeaningful
	if media.IsValidType(info.MediaType) {
		score += 3
	}
	if media.PlausibleYear(info.Year) {
		score += 2
	}
	if info.Season > 0 {
		score++
	}
	if info.Episode > 0 {
		score++
	}
	score -= 10 * extensionInTitle
	score -= noisePenalty(segment)
	if bonus := 3 - indexFromDeepest; bonus > 0 {
		score += bonus
	}
	return score
}

// noisePenalty counts release-vocabulary tokens in the raw segment. Noisy
// release names lose out to clean directory names of equal title length.
func noisePenalty(segment string) int {
	n := 0
	for _, tok := range tokenize(segment) {
		if isReleaseTag(tok) {
			n++
		}
	}
	return n
}

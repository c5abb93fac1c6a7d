package guess

import (
	"log/slog"
	"strings"

	"mediaid/internal/logging"
	"mediaid/internal/media"
)

// Parser extracts identification candidates from file paths.
type Parser struct {
	log *slog.Logger
}

// NewParser returns a parser logging through log. A nil logger is replaced
// with a no-op logger.
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = logging.NewNop()
	}
	return &Parser{log: log.With(logging.FieldComponent, "guess")}
}

// Parse interprets path and returns the best-scoring record, or nil when
// no segment yields a usable interpretation.
func (p *Parser) Parse(path string) *media.Info {
	segments := splitSegments(path)
	if len(segments) == 0 {
		return nil
	}

	best := p.bestCandidate(segments)
	if best == nil {
		best = p.fallback(segments)
	}
	if best == nil {
		p.log.Debug("no usable segment", "path", path)
		return nil
	}
	supplementFromSiblings(best, segments)
	best.UsedGuessit = true
	p.log.Debug("parsed path",
		"path", path,
		"title", best.Title,
		"type", string(best.MediaType),
		"year", best.Year,
		"season", best.Season,
		"episode", best.Episode)
	return best
}

func (p *Parser) bestCandidate(segments []string) *media.Info {
	var best *candidate
	for i := 0; i < len(segments); i++ {
		// index 0 is the deepest segment, its parent is index 1.
		segment := segments[i]
		if imageSidecar(segment) {
			continue
		}
		count := meaningfulCount(segment)
		if count < 1 {
			continue
		}
		if i+1 < len(segments) && count < meaningfulCount(segments[i+1]) {
			continue
		}

		info := parseSegment(segment)
		if info.Title == "" {
			continue
		}
		score := scoreCandidate(segment, info, i)
		if best == nil || score > best.score {
			best = &candidate{info: info, score: score, index: i}
		}
	}
	if best == nil {
		return nil
	}
	return best.info
}

// fallback concatenates the two deepest segments and parses the result.
// It rescues paths like "show_name/01.mkv" where no single segment stands
// on its own.
func (p *Parser) fallback(segments []string) *media.Info {
	n := len(segments)
	if n == 0 {
		return nil
	}
	joined := segments[0]
	if n > 1 {
		joined = segments[1] + " " + segments[0]
	}
	joined = strings.NewReplacer("_", " ", "-", " ").Replace(stripExtension(joined))
	joined = strings.Join(strings.Fields(joined), " ")
	if joined == "" {
		return nil
	}
	info := parseSegment(joined)
	if info.Title == "" {
		return nil
	}
	return info
}

// supplementFromSiblings fills season, episode, and year gaps from other
// path components, so layouts like "Show (2008)/Season 1/episode.mkv"
// contribute what the chosen segment lacks.
func supplementFromSiblings(best *media.Info, segments []string) {
	for _, segment := range segments {
		if best.Season > 0 && best.Episode > 0 && best.Year != 0 {
			return
		}
		info := parseSegment(segment)
		if best.Season == 0 && info.Season > 0 {
			best.Season = info.Season
		}
		if best.Episode == 0 && info.Episode > 0 {
			best.Episode = info.Episode
		}
		if best.Year == 0 && info.Year != 0 {
			best.Year = info.Year
		}
	}
	if best.Season > 0 || best.Episode > 0 {
		best.MediaType = media.TypeTV
	}
}

// splitSegments breaks a path on both separator styles, drops noise
// components, and returns the survivors deepest-first.
func splitSegments(path string) []string {
	raw := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	out := make([]string, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		if isNoiseSegment(raw[i]) {
			continue
		}
		out = append(out, raw[i])
	}
	return out
}

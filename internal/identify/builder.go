package identify

import "mediaid/internal/media"

// BuildPipeline assembles the stage sequence for one request. Filename
// requests earn the parser and classifier prefix; metadata requests start
// with a cache probe on the caller-supplied fields. Both modes share the
// catalog tail.
func (s *Stages) BuildPipeline(req *media.Request) []Stage {
	var stages []Stage
	if req != nil && req.Mode == media.ModeFilename {
		stages = append(stages,
			s.GuessIt(),
			s.CacheLookup("post-guessit"),
			s.OpenAIBasic(),
			s.CacheLookup("post-openai"),
		)
	} else {
		stages = append(stages, s.CacheLookup("metadata-seed"))
	}
	return append(stages,
		s.IdentifyMovie(),
		s.IdentifySeries(),
		s.CacheLookup("post-tmdb-identify"),
		s.OpenAISeasonEpisode(),
		s.MovieExternalIDs(),
		s.SeriesExternalIDs(),
		s.EpisodeDetails(),
		s.CacheLookup("post-tmdb-enrichment"),
	)
}

package media

import "sort"

// genreNames maps TMDB numeric genre IDs onto canonical names. Covers both
// the movie and TV genre lists.
var genreNames = map[int64]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10759: "Action & Adventure",
	10762: "Kids",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
}

// GenreNames resolves numeric genre IDs into a sorted set of canonical
// names. Unknown IDs are dropped.
func GenreNames(ids []int64) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		name, ok := genreNames[id]
		if !ok {
			continue
		}
		seen[name] = struct{}{}
	}
	return sortedGenreSet(seen)
}

// DedupeGenres normalizes a list of genre names into a sorted set.
func DedupeGenres(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}
	return sortedGenreSet(seen)
}

func sortedGenreSet(seen map[string]struct{}) []string {
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

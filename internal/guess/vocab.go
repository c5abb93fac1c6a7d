package guess

import "strings"

// noiseSegments are path components that carry no identification signal:
// mount points, library roots, scratch directories.
var noiseSegments = map[string]struct{}{
	"":          {},
	".":         {},
	"..":        {},
	"tmp":       {},
	"temp":      {},
	"data":      {},
	"apps":      {},
	"app":       {},
	"mnt":       {},
	"media":     {},
	"srv":       {},
	"home":      {},
	"var":       {},
	"usr":       {},
	"opt":       {},
	"volumes":   {},
	"downloads": {},
	"download":  {},
	"library":   {},
	"videos":    {},
	"video":     {},
	"movies":    {},
	"films":     {},
	"tv":        {},
	"shows":     {},
	"series":    {},
	"torrents":  {},
	"incoming":  {},
	"complete":  {},
	"completed": {},
}

// containerExtensions are file extensions of playable media and their
// common sidecars.
var containerExtensions = map[string]struct{}{
	"mkv":  {},
	"mp4":  {},
	"m4v":  {},
	"avi":  {},
	"mov":  {},
	"wmv":  {},
	"flv":  {},
	"webm": {},
	"ts":   {},
	"m2ts": {},
	"vob":  {},
	"iso":  {},
	"srt":  {},
	"sub":  {},
	"idx":  {},
	"nfo":  {},
}

// imageExtensions mark sidecar artwork files.
var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}

// assetTokens mark artwork stems that describe the release, not the work.
var assetTokens = []string{"poster", "sample", "proof", "screen", "cover", "art", "fanart", "banner", "thumb", "logo"}

// releaseTags is the generic release vocabulary: resolutions, sources,
// codecs, audio tags, groups. Tokens here are never part of a title.
var releaseTags = map[string]struct{}{
	"480p":      {},
	"576p":      {},
	"720p":      {},
	"1080p":     {},
	"1080i":     {},
	"2160p":     {},
	"4k":        {},
	"uhd":       {},
	"hd":        {},
	"sd":        {},
	"hdr":       {},
	"hdr10":     {},
	"dv":        {},
	"dolby":     {},
	"vision":    {},
	"bluray":    {},
	"blu":       {},
	"ray":       {},
	"bdrip":     {},
	"brrip":     {},
	"dvdrip":    {},
	"dvd":       {},
	"webdl":     {},
	"webrip":    {},
	"web":       {},
	"dl":        {},
	"rip":       {},
	"hdtv":      {},
	"pdtv":      {},
	"cam":       {},
	"camrip":    {},
	"telesync":  {},
	"screener":  {},
	"remux":     {},
	"x264":      {},
	"x265":      {},
	"h264":      {},
	"h265":      {},
	"hevc":      {},
	"avc":       {},
	"xvid":      {},
	"divx":      {},
	"av1":       {},
	"vp9":       {},
	"aac":       {},
	"ac3":       {},
	"eac3":      {},
	"dts":       {},
	"truehd":    {},
	"atmos":     {},
	"flac":      {},
	"mp3":       {},
	"ddp":       {},
	"dd5":       {},
	"multi":     {},
	"dual":      {},
	"audio":     {},
	"subs":      {},
	"subbed":    {},
	"dubbed":    {},
	"proper":    {},
	"repack":    {},
	"internal":  {},
	"limited":   {},
	"extended":  {},
	"unrated":   {},
	"remastered": {},
	"yify":      {},
	"yts":       {},
	"rarbg":     {},
	"ettv":      {},
	"eztv":      {},
	"amzn":      {},
	"nf":        {},
	"hulu":      {},
	"dsnp":      {},
}

func isNoiseSegment(segment string) bool {
	_, ok := noiseSegments[strings.ToLower(strings.TrimSpace(segment))]
	return ok
}

func isContainerExtension(token string) bool {
	_, ok := containerExtensions[strings.ToLower(token)]
	return ok
}

func isImageExtension(token string) bool {
	_, ok := imageExtensions[strings.ToLower(token)]
	return ok
}

func isReleaseTag(token string) bool {
	_, ok := releaseTags[strings.ToLower(token)]
	return ok
}

func hasAssetToken(stem string) bool {
	lower := strings.ToLower(stem)
	for _, tok := range assetTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// meaningfulToken reports whether a token could belong to a title: at
// least two alphabetic characters and not in the release vocabulary.
func meaningfulToken(token string) bool {
	if isReleaseTag(token) || isContainerExtension(token) {
		return false
	}
	alpha := 0
	for _, r := range token {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			alpha++
		}
	}
	return alpha >= 2
}

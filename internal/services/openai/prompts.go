package openai

// systemInstructions pins the model to bare task output. The extraction
// tasks below restate the format; both layers reject chatty answers.
const systemInstructions = `You are an AI that executes text extraction tasks exactly as described.
Only respond with the task result, strictly following the output format the task specifies.
This is very important: you are forbidden from adding explanations, rephrasing, adding context, adding code blocks, or adding any extra text. Output only the task result.
Think step by step and double-check your answer before responding, especially when the input is ambiguous or tricky.
You are forbidden from guessing, inferring, or deducing information that is not explicitly present in the user input or the task description.`

const classifyTypeTask = `Task: analyze the input file path and decide whether it names a movie or a TV show episode.
Rules:
- Work to the best of your knowledge and use filename conventions to make an informed decision.
- The output must be exactly one of: "movie", "tv", or "unknown". No other value, no explanation.
- "unknown" must be your last resort. Try to classify as "movie" or "tv" whenever possible.
- Output must be a single token with no leading or trailing spaces or newlines.
- Ignore the file extension and letter case when analyzing the path.
Examples:
- "The.Matrix.1999.1080p.BluRay.x264.DTS-FGT.mkv" -> movie
- "Breaking.Bad.S05E14.720p.HDTV.x264-IMMERSE.mkv" -> tv
- "Inception.2010.720p.BluRay.x264.YIFY.mp4" -> movie
- "Game.of.Thrones.S08E03.1080p.WEB.H264-MEMENTO.mkv" -> tv
- "Friends.2x11.480p.DVD.x264-SAiNTS.mkv" -> tv
- "1917.2019.2160p.UHD.BluRay.X265-IAMABLE.mkv" -> movie
- "Seinfeld.821.720p.HDTV.x264-GROUP.mkv" -> tv
- "2012.2009.BluRay.avi" -> movie
- "24.S01E01.avi" -> tv
- "Sherlock.S02.E03.1080p.BluRay.x264-SHORTCUT.mkv" -> tv
- "Dune.Part.One.2021.1080p.BluRay.x264-GROUP.mkv" -> movie
- "The.Walking.Dead.1001.1080p.WEB.H264-STRiFE.mkv" -> tv
- "Pulp.Fiction.1994.DVDRip.XviD.AC3\DISC2\pulpfict-ac3.r03" -> movie
- "shows/Game.of.Thrones.S08E03.1080p.WEB.H264-MEMENTO\DISC1\got-s08e03.mkv" -> tv
- "Friday.The.13th.The.Final.Chapter.1984.REMASTERED.1080P.BLURAY.X264-WATCHABLE.mkv" -> movie
- "Friday.The.13th.S03E20.The.Channel.Pit.REMASTERED.1080P.BLURAY.X264-WATCHABLE.mkv" -> tv
- "readme.md" -> unknown`

const movieTitleTask = `Task: the input file path is known to name a movie. Extract and return only the title of the movie, cleaned and as close as possible to the original release name, with spaces and proper capitalization.
Rules:
- Ignore resolution, codecs, year, quality, group tags, scene group name, file extension, and any extra descriptors.
- Return only the movie title. No year, no quality, no tags, no extension, no explanation.
- Remove dots, dashes, and underscores that separate title words.
- If you cannot reasonably extract a movie title, as your last resort, return "unknown".
- The output must be a single line with no extra spaces at the start or end.
Examples:
- "The.Matrix.1999.1080p.BluRay.x264.DTS-FGT.mkv" -> The Matrix
- "Inception.2010.720p.BluRay.x264.YIFY.mp4" -> Inception
- "1917.2019.2160p.UHD.BluRay.X265-IAMABLE.mkv" -> 1917
- "Mad.Max.Fury.Road.2015.720p.BluRay.x264.YIFY.mp4" -> Mad Max - Fury Road
- "Movie.2001.Space.Odyssey.1968.720p.BluRay.x264.YIFY.mp4" -> 2001 Space Odyssey
- "Alien3.1992.720p.BluRay.x264.YIFY.mp4" -> Alien 3
- "10.Things.I.Hate.About.You.1999.mkv" -> 10 Things I Hate About You
- "Se7en.1995.avi" -> Se7en
- "John.Wick.Chapter.3.Parabellum.2019.720p.BluRay.mkv" -> John Wick - Chapter 3 Parabellum
- "Stephen King\The.Lawnmower.Man.1992.DVDRiP.XviD.iNTERNAL-JUSTRiP\CD1\jrp-tlma.r05" -> The Lawnmower Man
- "classics/Jaws.1975.720p.BluRay.x264.YIFY\CD1\jaws1975-yify.mp4" -> Jaws
- "The Shawshank Redemption 1994 1080p BluRay x264 YIFY.mp4" -> The Shawshank Redemption
- "Killing.Zoe.1993.1080p.BluRay.x264-LCHD/lchd-kz1080p.rar" -> Killing Zoe
- "Show.Name.S01E01.1080p.WEB-DL-GROUP.mkv" -> unknown
- "README.txt" -> unknown`

const seriesTitleTask = `Task: the input file path is known to name a TV show episode. Extract and return only the title of the TV show, cleaned and as close as possible to the original show name, with spaces and proper capitalization.
Rules:
- Ignore season/episode markers, year, quality, codecs, group tags, scene group name, file extension, and any extra descriptors.
- Return only the show title. No year, no S01E01, no group tags, no explanation.
- Remove dots, dashes, and underscores that separate title words.
- If you cannot reasonably extract a TV show title, as your last resort, return "unknown".
- The output must be a single line with no extra spaces at the start or end.
Examples:
- "Breaking.Bad.S05E14.720p.HDTV.x264-IMMERSE.mkv" -> Breaking Bad
- "Game.of.Thrones.S08E03.1080p.WEB.H264-MEMENTO.mkv" -> Game of Thrones
- "The.Office.US.S07E17.720p.NF.WEB-DL.DDP5.1.x264-NTb.mkv" -> The Office US
- "Friends.2x11.480p.DVD.x264-SAiNTS.mkv" -> Friends
- "ShowName_S06_E12_HDTV.mp4" -> Show Name
- "Battlestar.Galactica.2004.S01E01.33.720p.BluRay.x264.mkv" -> Battlestar Galactica 2004
- "13.Reasons.Why.S02E01.mkv" -> 13 Reasons Why
- "24.S01E01.avi" -> 24
- "CSI.204.avi" -> CSI
- "Room.104.2017.1080p.WEBRip.x264-STRiFE.mkv" -> Room 104
- "favs/Friends.2x11.480p.DVD.x264-SAiNTS\CD1\friends-2x11.rar" -> Friends
- "Sherlock S02 E03 1080p BluRay x264-SHORTCUT.mkv" -> Sherlock
- "README.txt" -> unknown`

const seasonEpisodeTask = `Task: the input file path is known to name a TV show episode. Extract and return the season and episode number in the format: "season:X, episode:Y" (e.g., "season:1, episode:2").
Rules:
- Only return the season and episode numbers, not titles, quality, or any other info.
- Detect SxxEyy, 1x02, or similar patterns.
- For double-episode files, return the first episode (e.g., S01E01E02 = episode 1).
- If you cannot reasonably extract both season and episode, return "unknown" (this must be your last resort).
- Output must match exactly: "season:X, episode:Y" (no leading zeros, no explanation).
Examples:
- "Breaking.Bad.S05E14.720p.HDTV.x264-IMMERSE.mkv" -> season:5, episode:14
- "Game.of.Thrones.S08E03.1080p.WEB.H264-MEMENTO.mkv" -> season:8, episode:3
- "Friends.2x11.480p.DVD.x264-SAiNTS.mkv" -> season:2, episode:11
- "ShowName_S06_E12_HDTV.mp4" -> season:6, episode:12
- "Rick.and.Morty.S05E01E02.720p.WEBRip.x264-ION10.mkv" -> season:5, episode:1
- "Seinfeld.821.720p.HDTV.x264-GROUP.mkv" -> season:8, episode:21
- "CSI.204.avi" -> season:2, episode:4
- "ER.101.avi" -> season:1, episode:1
- "Sherlock S02 E03 1080p BluRay x264-SHORTCUT.mkv" -> season:2, episode:3
- "Lost.S04E02.PT-BR.1080p.WEB-DL\CD2\lost-s04e02.mp4" -> season:4, episode:2
- "README.txt" -> unknown`

// buildInput frames a task and the literal path the way the model expects.
func buildInput(task, path string) string {
	return "Output only the result as specified in the task below.\nTask:\n" + task + "\nInput:\n```plaintext\n" + path + "\n```"
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"mediaid/internal/media"
)

func newIdentifyCommand(configFlag *string) *cobra.Command {
	var (
		mediaType string
		title     string
		year      int
		season    int
		episode   int
	)

	cmd := &cobra.Command{
		Use:   "identify [filename]",
		Short: "Identify a single file or title without starting the service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), *configFlag)
			if err != nil {
				return err
			}
			defer rt.Close()

			var info *media.Info
			switch {
			case len(args) == 1:
				info, err = rt.identifier.IdentifyByFilename(cmd.Context(), args[0])
			case title != "":
				info, err = rt.identifier.IdentifyByMetadata(cmd.Context(), media.MetadataParams{
					MediaType: mediaType,
					Title:     title,
					Year:      year,
					Season:    season,
					Episode:   episode,
				})
			default:
				return fmt.Errorf("provide a filename argument or --title metadata")
			}
			if err != nil {
				return err
			}
			if info == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not identified")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecord(info))
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaType, "type", "", "Media type (movie or tv)")
	cmd.Flags().StringVar(&title, "title", "", "Title to identify")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	cmd.Flags().IntVar(&season, "season", 0, "Season number")
	cmd.Flags().IntVar(&episode, "episode", 0, "Episode number")

	return cmd
}

func renderRecord(info *media.Info) string {
	rows := []table.Row{
		{"Title", info.Title},
		{"Type", string(info.MediaType)},
	}
	if info.Year != 0 {
		rows = append(rows, table.Row{"Year", strconv.Itoa(info.Year)})
	}
	if info.Season != 0 {
		rows = append(rows, table.Row{"Season", strconv.Itoa(info.Season)})
	}
	if info.Episode != 0 {
		rows = append(rows, table.Row{"Episode", strconv.Itoa(info.Episode)})
	}
	if info.EpisodeTitle != "" {
		rows = append(rows, table.Row{"Episode title", info.EpisodeTitle})
	}
	if info.TMDBID != 0 {
		rows = append(rows, table.Row{"TMDB ID", strconv.FormatInt(info.TMDBID, 10)})
	}
	if info.TMDBSeriesID != 0 {
		rows = append(rows, table.Row{"TMDB series ID", strconv.FormatInt(info.TMDBSeriesID, 10)})
	}
	if info.IMDBID != "" {
		rows = append(rows, table.Row{"IMDB ID", info.IMDBID})
	}
	if len(info.Genres) > 0 {
		rows = append(rows, table.Row{"Genres", strings.Join(info.Genres, ", ")})
	}
	rows = append(rows, table.Row{"Sources", provenance(info)})
	return renderTable(table.Row{"Field", "Value"}, rows)
}

func provenance(info *media.Info) string {
	var sources []string
	if info.UsedGuessit {
		sources = append(sources, "parser")
	}
	if info.UsedTMDB {
		sources = append(sources, "tmdb")
	}
	if info.UsedOpenAI {
		sources = append(sources, "openai")
	}
	if len(sources) == 0 {
		return "cache"
	}
	return strings.Join(sources, ", ")
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"freegames/internal/models"
)

type listOptions struct {
	search      string
	platforms   []string
	genre       string
	minRating   float64
	accessTypes []string
	sortBy      string
	asJSON      bool
}

func newListCmd(configDir *string) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games matching the given filters",
		Example: `  freegames list --platform Steam --min-rating 8 --sort rating
  freegames list --access free --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			repo, closeRepo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer closeRepo()

			service, err := newService(cfg, repo, nil)
			if err != nil {
				return err
			}

			filter := opts.filter(cmd.Flags().Changed("min-rating"))
			games, err := service.ListGames(filter)
			if err != nil {
				return err
			}
			return printGames(cmd.OutOrStdout(), games, opts.asJSON)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.search, "search", "s", "", "Substring to match in title or description")
	flags.StringSliceVarP(&opts.platforms, "platform", "p", nil, "Platform to include (repeatable)")
	flags.StringVarP(&opts.genre, "genre", "g", "", "Exact genre")
	flags.Float64Var(&opts.minRating, "min-rating", 0, "Minimum rating (unrated games are excluded)")
	flags.StringSliceVarP(&opts.accessTypes, "access", "a", nil, "Access type: free or subscription (repeatable)")
	flags.StringVar(&opts.sortBy, "sort", string(models.SortLatest), "Sort order: latest, rating, name or endDate")
	flags.BoolVarP(&opts.asJSON, "json", "j", false, "Print JSON instead of a table")
	return cmd
}

func (o listOptions) filter(hasMinRating bool) models.GameFilter {
	f := models.GameFilter{
		Search:    o.search,
		Platforms: o.platforms,
		Genre:     o.genre,
		SortBy:    models.SortBy(o.sortBy),
	}
	if hasMinRating {
		rating := o.minRating
		f.MinRating = &rating
	}
	for _, a := range o.accessTypes {
		f.AccessTypes = append(f.AccessTypes, models.AccessType(a))
	}
	return f
}

func printGames(w io.Writer, games []models.Game, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPLATFORM\tRATING\tGENRE\tACCESS\tENDS")
	for _, g := range games {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Title, g.Platform, ratingText(g.Rating), orDash(g.Genre), accessText(g), endDateText(g))
	}
	return tw.Flush()
}

func ratingText(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func accessText(g models.Game) string {
	if g.AccessType() == models.AccessSubscription {
		return *g.RequiresSubscription
	}
	return string(models.AccessFree)
}

func endDateText(g models.Game) string {
	if g.EndDate == nil {
		return "-"
	}
	return g.EndDate.Format("2006-01-02")
}

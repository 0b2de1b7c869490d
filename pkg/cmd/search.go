package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/browse"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/search"
)

const (
	SearchCmdName  = "search"
	SearchCmdShort = "Search the catalog from the command line"
	SearchCmdLong  = `Run one storefront search and print the page of results.

Start from a query string with --query and refine it with the facet flags:
  carlot search --query "make=Tesla&condition=used"
  carlot search --make Toyota --sort price --page 2`
)

type searchFlags struct {
	query        string
	makeName     string
	model        string
	minPrice     int
	maxPrice     int
	condition    string
	keyword      string
	fuelType     string
	year         int
	yearRange    string
	transmission string
	sort         string
	direction    string
	page         int
	pageSize     int
}

var searchOpts searchFlags

func init() {
	RootCmd.AddCommand(SearchCmd)
	addSearchFlags(SearchCmd.Flags(), &searchOpts)
}

func addSearchFlags(f *pflag.FlagSet, o *searchFlags) {
	f.StringVarP(&o.query, "query", "q", "", "query string to start from")
	f.StringVar(&o.makeName, "make", "", "make (clears the model unless --model is also given)")
	f.StringVar(&o.model, "model", "", "model")
	f.IntVar(&o.minPrice, "min-price", search.DefaultMinPrice, "minimum price")
	f.IntVar(&o.maxPrice, "max-price", search.DefaultMaxPrice, "maximum price")
	f.StringVar(&o.condition, "condition", "all", "all, new or used")
	f.StringVarP(&o.keyword, "keyword", "k", "", "free text matched against make, model, category and fuel type")
	f.StringVar(&o.fuelType, "fuel", "", "fuel type")
	f.IntVar(&o.year, "year", 0, "model year")
	f.StringVar(&o.yearRange, "year-range", "", `year range, e.g. "2015-2019", "Pre-2015" or "2020+"`)
	f.StringVar(&o.transmission, "transmission", "", "transmission")
	f.StringVar(&o.sort, "sort", "", "relevance, price, year or mileage")
	f.StringVar(&o.direction, "direction", "", "asc or desc (default depends on --sort)")
	f.IntVar(&o.page, "page", 0, "page number")
	f.IntVar(&o.pageSize, "page-size", 0, "results per page (0 keeps the configured size)")
}

var SearchCmd = &cobra.Command{
	Use:   SearchCmdName,
	Short: SearchCmdShort,
	Long:  SearchCmdLong,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()

		q := buildQuery(cmd, searchOpts, a.catalog.Vocabulary())

		session := browse.NewSession(a.search, browse.WithLogger(a.log.Named("browse")))
		session.Restore(q.Encode())
		if q.PageSize > 0 {
			_, err = session.SetPageSize(cmd.Context(), q.PageSize)
			if err == nil && q.Page > 1 {
				_, err = session.GoToPage(cmd.Context(), q.Page)
			}
		} else {
			_, err = session.Refresh(cmd.Context())
		}

		printSearchState(cmd.OutOrStdout(), session.State())
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		return nil
	},
}

// buildQuery layers the changed facet flags over --query.
func buildQuery(cmd *cobra.Command, o searchFlags, vocab *dal.Vocabulary) search.Query {
	q := search.ParseQuery(o.query)
	flags := cmd.Flags()
	f := &q.Filter

	if flags.Changed("make") {
		f.SetMake(o.makeName)
	}
	if flags.Changed("model") {
		f.SetModel(o.model)
	}
	if flags.Changed("min-price") || flags.Changed("max-price") {
		lo, hi := f.PriceRange.Min(), f.PriceRange.Max()
		if flags.Changed("min-price") {
			lo = o.minPrice
		}
		if flags.Changed("max-price") {
			hi = o.maxPrice
		}
		f.SetPriceRange(lo, hi)
	}
	if flags.Changed("condition") {
		f.SetCondition(search.Condition(o.condition))
	}
	if flags.Changed("keyword") {
		f.SetKeyword(o.keyword)
	}
	if flags.Changed("fuel") {
		f.SetFuelType(o.fuelType)
	}
	// --year is applied last so it wins over --year-range, as in Normalize.
	if flags.Changed("year-range") {
		f.SetYearRange(o.yearRange)
	}
	if flags.Changed("year") {
		f.SetYear(o.year)
	}
	if flags.Changed("transmission") {
		f.SetTransmission(o.transmission)
	}
	if flags.Changed("sort") {
		q.Sort = search.SortFor(search.SortField(o.sort))
	}
	if flags.Changed("direction") {
		q.Sort.Direction = search.SortDirection(o.direction)
	}
	if flags.Changed("page") {
		q.Page = o.page
	}
	if flags.Changed("page-size") {
		q.PageSize = o.pageSize
	}

	q.Filter = search.Reconcile(q.Filter, vocab)
	return q.Normalize()
}

func printSearchState(w io.Writer, st browse.State) {
	bold := color.New(color.Bold)
	fmt.Fprintf(w, "query: ?%s\n", st.Query.Encode())

	switch st.Status {
	case browse.StatusUnavailable:
		color.New(color.FgRed).Fprintln(w, "catalog unavailable, retry the search")
		return
	case browse.StatusEmpty:
		color.New(color.FgYellow).Fprintln(w, "no cars match, adjust the filters")
		return
	}

	res := st.Result
	bold.Fprintf(w, "%d cars, page %d of %d\n", res.Total, res.Page, res.TotalPages)
	for _, c := range res.Items {
		mileage := "New"
		if !c.IsNew() {
			mileage = fmt.Sprintf("%d mi", c.Mileage)
		}
		fmt.Fprintf(w, "  %-7s %-28s %9s  %-10s %-9s %s\n",
			c.ID, c.Title(), fmt.Sprintf("$%d", c.Price), mileage, c.FuelType, c.Transmission)
	}

	pages := make([]string, 0, len(res.Pages()))
	for _, p := range res.Pages() {
		if !p.Ellipsis && p.Number == res.Page {
			pages = append(pages, bold.Sprintf("[%d]", p.Number))
			continue
		}
		pages = append(pages, p.String())
	}
	if len(pages) > 1 {
		fmt.Fprintf(w, "pages: %s\n", strings.Join(pages, " "))
	}
}

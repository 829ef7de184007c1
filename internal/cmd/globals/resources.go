package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/matcher"
	"github.com/agentstation/signlib/pkg/catalogs"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/query"
)

// AddViewFlags adds the category, search and sort flags of a catalog view.
func AddViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", query.CategoryAll,
		`Category filter: "all", "favorites", or a category name`)
	cmd.Flags().StringP("search", "s", "",
		"Search title, category and tags")
	cmd.Flags().String("sort", string(query.SortNewest),
		"Sort order: newest, oldest, az, za")
}

// ParseView builds a query from the view flags.
// The command must have had AddViewFlags called on it.
func ParseView(cmd *cobra.Command) (query.Query, error) {
	sort, err := query.ParseSort(mustGetString(cmd, "sort"))
	if err != nil {
		return query.Query{}, err
	}
	return query.Query{
		Category: mustGetString(cmd, "category"),
		Search:   mustGetString(cmd, "search"),
		Sort:     sort,
	}, nil
}

// AddImportFlags adds the shared category and tags of an import.
func AddImportFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", "",
		"Category for every imported video (default: auto-detect from filename)")
	cmd.Flags().String("tags", "",
		"Comma-separated tags for every imported video")
	cmd.Flags().StringSlice("include", nil,
		"Only take files matching these glob or regex patterns")
	cmd.Flags().StringSlice("exclude", nil,
		"Leave out files matching these glob or regex patterns")
}

// ParseImport reads the import flags.
// The command must have had AddImportFlags called on it.
func ParseImport(cmd *cobra.Command) importer.Defaults {
	return importer.Defaults{
		Category: mustGetString(cmd, "category"),
		Tags:     catalogs.ParseTags(mustGetString(cmd, "tags")),
	}
}

// ParseFilter compiles the --include and --exclude patterns.
// The command must have had AddImportFlags called on it.
func ParseFilter(cmd *cobra.Command) (*matcher.Filter, error) {
	include, err := cmd.Flags().GetStringSlice("include")
	if err != nil {
		return nil, err
	}
	exclude, err := cmd.Flags().GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}
	return matcher.NewFilter(include, exclude)
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

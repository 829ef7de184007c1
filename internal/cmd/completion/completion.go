// Package completion provides dynamic shell completions for commands and flags.
package completion

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/signlib/internal/appcontext"
	"github.com/agentstation/signlib/internal/cmd/output"
	"github.com/agentstation/signlib/internal/deps"
	"github.com/agentstation/signlib/internal/export"
	"github.com/agentstation/signlib/pkg/classify"
	"github.com/agentstation/signlib/pkg/importer"
	"github.com/agentstation/signlib/pkg/query"
	"github.com/agentstation/signlib/pkg/storage"
)

// Func is the signature cobra calls for argument and flag completion.
type Func func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// VideoIDs completes the first argument with the ids of the library's
// videos, described by their titles.
func VideoIDs(app appcontext.Interface) Func {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		lib, err := app.Library(cmd.Context())
		if err != nil || lib == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for _, v := range lib.Videos() {
			if strings.HasPrefix(v.ID, toComplete) {
				out = append(out, v.ID+"\t"+v.Title)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// Categories completes category names: the classifier's labels plus any
// custom category in the library. With filters set, the "all" and
// "favorites" pseudo-categories come first.
func Categories(app appcontext.Interface, filters bool) Func {
	return func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		seen := map[string]bool{}
		var names []string
		add := func(name string) {
			if name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		for _, name := range classify.Categories() {
			add(name)
		}
		if lib, err := app.Library(cmd.Context()); err == nil && lib != nil {
			for _, c := range lib.Summary().Categories {
				add(c.Name)
			}
		}
		sort.Strings(names)
		if filters {
			names = append([]string{query.CategoryAll, query.CategoryFavorites}, names...)
		}
		return matching(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// Values completes a fixed set of values.
func Values(values ...string) Func {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return matching(values, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// Register attaches flag completions to root and every subcommand that
// defines the flag. Flags a command lacks are skipped.
func Register(root *cobra.Command, app appcontext.Interface) {
	sorts := make([]string, len(query.Sorts))
	for i, s := range query.Sorts {
		sorts[i] = s.String()
	}
	players := make([]string, len(deps.Players))
	for i, p := range deps.Players {
		players[i] = p.Name
	}
	backends := make([]string, len(storage.Backends))
	for i, b := range storage.Backends {
		backends[i] = b.String()
	}

	formats := make([]string, len(output.Formats))
	for i, f := range output.Formats {
		formats[i] = string(f)
	}

	_ = root.RegisterFlagCompletionFunc("format", Values(formats...))
	_ = root.RegisterFlagCompletionFunc("storage", Values(backends...))
	_ = root.RegisterFlagCompletionFunc("log-level", Values("trace", "debug", "info", "warn", "error"))

	walk(root, func(cmd *cobra.Command) {
		// View commands filter by category; import commands assign one.
		isView := cmd.Flags().Lookup("sort") != nil
		flags := map[string]Func{
			"category": Categories(app, isView),
			"sort":     Values(sorts...),
			"player":   Values(players...),
			"on-error": Values(string(importer.Abort), string(importer.Skip)),
			"type":     Values(string(export.FormatMarkdown), string(export.FormatJSON), string(export.FormatYAML)),
		}
		for name, fn := range flags {
			if cmd.Flags().Lookup(name) != nil {
				_ = cmd.RegisterFlagCompletionFunc(name, fn)
			}
		}
	})
}

func walk(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, c := range cmd.Commands() {
		walk(c, fn)
	}
}

func matching(values []string, prefix string) []string {
	var out []string
	lower := strings.ToLower(prefix)
	for _, v := range values {
		if strings.HasPrefix(strings.ToLower(v), lower) {
			out = append(out, v)
		}
	}
	return out
}

package shelf

import (
	"sort"

	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator builds the name collator used for display ordering. An explicit
// BCP 47 override wins; otherwise the user's locale is detected, falling back
// to the locale-neutral root when detection or parsing fails. Comparison is
// always case-insensitive.
func NewCollator(override string) *collate.Collator {
	tag := language.Und

	if override != "" {
		if parsed, err := language.Parse(override); err == nil {
			tag = parsed
		}
	} else if detected, err := golocale.GetLocale(); err == nil {
		if parsed, err := language.Parse(detected); err == nil {
			tag = parsed
		}
	}

	return collate.New(tag, collate.IgnoreCase)
}

// sortEntries orders a displayed list in place: directories strictly before
// files, same-kind entries ascending by name under the collator.
func sortEntries(entries []Entry, collator *collate.Collator) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return collator.CompareString(a.Name, b.Name) < 0
	})
}

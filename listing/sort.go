package listing

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// KeyKind discriminates the sort key variants.
type KeyKind int

const (
	// StringKind compares collation aware, case sensitive.
	StringKind KeyKind = iota
	// NumberKind compares numerically.
	NumberKind
	// TimeKind compares by timestamp.
	TimeKind
)

// Key is one record's sort key. Nil or absent values must be represented
// as an empty StringKey so they group together at the ascending head.
type Key struct {
	Kind KeyKind
	Str  string
	Num  float64
	Time time.Time
}

// StringKey builds a string sort key.
func StringKey(s string) Key {
	return Key{Kind: StringKind, Str: s}
}

// StringPtrKey builds a string sort key treating nil as the empty string.
func StringPtrKey(s *string) Key {
	if s == nil {
		return StringKey("")
	}

	return StringKey(*s)
}

// NumberKey builds a numeric sort key.
func NumberKey(n float64) Key {
	return Key{Kind: NumberKind, Num: n}
}

// TimeKey builds a timestamp sort key.
func TimeKey(t time.Time) Key {
	return Key{Kind: TimeKind, Time: t}
}

func compareKeys(c *collate.Collator, a, b Key) int {
	if a.Kind != b.Kind {
		// mixed kinds fall back to the zero ordering of their kind values
		switch {
		case a.Kind < b.Kind:
			return -1
		case a.Kind > b.Kind:
			return 1
		}
	}

	switch a.Kind {
	case NumberKind:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	case TimeKind:
		switch {
		case a.Time.Before(b.Time):
			return -1
		case a.Time.After(b.Time):
			return 1
		default:
			return 0
		}
	default:
		return c.CompareString(a.Str, b.Str)
	}
}

// SortStable sorts items in place by the given key function.
//
// Ascending order is stable: records with equal keys keep their original
// relative order. Descending order is the exact reversal of the ascending
// order, so toggling the direction reverses the visible list exactly.
func SortStable[T any](items []T, key func(T) Key, dir SortDirection) {
	if key == nil {
		return
	}

	collator := collate.New(language.Und)

	sort.SliceStable(items, func(i, j int) bool {
		return compareKeys(collator, key(items[i]), key(items[j])) < 0
	})

	if dir == Descending {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
}

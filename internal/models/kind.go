package models

import "strings"

// ContentKind represents the kind of content a scraped item refers to
type ContentKind int

const (
	KindUnknown ContentKind = iota
	KindMovie
	KindSeries
	KindWebSeries
)

// String returns the string representation of the content kind
func (k ContentKind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindSeries:
		return "series"
	case KindWebSeries:
		return "web-series"
	default:
		return "unknown"
	}
}

// ParseContentKind converts a content kind string to ContentKind enum
func ParseContentKind(kindStr string) ContentKind {
	switch strings.ToLower(kindStr) {
	case "movie":
		return KindMovie
	case "series":
		return KindSeries
	case "web-series", "webseries":
		return KindWebSeries
	default:
		return KindUnknown
	}
}

// CatalogType maps the content kind onto the catalog's query type.
// Series queries the catalog as "tv"; everything else as "movie".
func (k ContentKind) CatalogType() string {
	if k == KindSeries {
		return "tv"
	}
	return "movie"
}

// MarshalJSON implements json.Marshaler interface
func (k ContentKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (k *ContentKind) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	*k = ParseContentKind(str)
	return nil
}

package registry

import (
	"fmt"

	"github.com/goliatone/go-json-translate/internal/locales"
)

// MemberKind classifies generated members.
type MemberKind int

const (
	KindReader MemberKind = iota + 1
	KindWriter
	KindLocaleReader
	KindLocaleWriter
	KindArel
	KindWithTranslation
	KindSelect
	KindOrder
)

func (k MemberKind) String() string {
	switch k {
	case KindReader:
		return "reader"
	case KindWriter:
		return "writer"
	case KindLocaleReader:
		return "locale_reader"
	case KindLocaleWriter:
		return "locale_writer"
	case KindArel:
		return "arel"
	case KindWithTranslation:
		return "with_translation"
	case KindSelect:
		return "select"
	case KindOrder:
		return "order"
	default:
		return "unknown"
	}
}

// Member is one entry of the generated member table. Locale is set only for
// per-locale readers and writers.
type Member struct {
	Name      string
	Kind      MemberKind
	Attribute string
	Locale    string
}

// memberTable builds every member generated for attribute over locales.
func memberTable(attribute string, available []string) []Member {
	members := []Member{
		{Name: attribute, Kind: KindReader, Attribute: attribute},
		{Name: attribute + "=", Kind: KindWriter, Attribute: attribute},
		{Name: "arel_" + attribute, Kind: KindArel, Attribute: attribute},
		{Name: fmt.Sprintf("with_%s_translation", attribute), Kind: KindWithTranslation, Attribute: attribute},
		{Name: "select_" + attribute, Kind: KindSelect, Attribute: attribute},
		{Name: "order_" + attribute, Kind: KindOrder, Attribute: attribute},
	}
	for _, locale := range available {
		name := attribute + "_" + locales.Normalize(locale)
		members = append(members,
			Member{Name: name, Kind: KindLocaleReader, Attribute: attribute, Locale: locale},
			Member{Name: name + "=", Kind: KindLocaleWriter, Attribute: attribute, Locale: locale},
		)
	}
	return members
}

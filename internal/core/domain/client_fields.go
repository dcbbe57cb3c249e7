package domain

import (
	"sort"
	"strconv"
)

// fieldValue is what a rule condition sees of a client attribute. A value is
// either a string or a bool; absent values match nothing.
type fieldValue struct {
	str     string
	boolean bool
	isBool  bool
	present bool
}

func stringValue(s string) fieldValue { return fieldValue{str: s, present: true} }

func boolValue(b bool) fieldValue { return fieldValue{boolean: b, isBool: true, present: true} }

func optionalString(s *string) fieldValue {
	if s == nil {
		return fieldValue{}
	}
	return stringValue(*s)
}

// String renders the value the way IN lists spell it.
func (v fieldValue) String() string {
	if v.isBool {
		return strconv.FormatBool(v.boolean)
	}
	return v.str
}

func (v fieldValue) truthy() bool {
	if !v.present {
		return false
	}
	if v.isBool {
		return v.boolean
	}
	return v.str != ""
}

type fieldAccessor func(c Client) fieldValue

// clientFields is the allow-list of attributes rules may reference.
var clientFields = map[string]fieldAccessor{
	"denumire":      func(c Client) fieldValue { return stringValue(c.Denumire) },
	"tip":           func(c Client) fieldValue { return stringValue(c.Tip) },
	"cui":           func(c Client) fieldValue { return stringValue(c.CUI) },
	"activa":        func(c Client) fieldValue { return boolValue(c.Activa) },
	"administratie": func(c Client) fieldValue { return stringValue(c.Administratie) },
	"impozit":       func(c Client) fieldValue { return stringValue(c.Impozit) },
	"platitorTVA":   func(c Client) fieldValue { return stringValue(string(c.PlatitorTVA)) },
	"tvaLaIncasare": func(c Client) fieldValue { return boolValue(c.TVALaIncasare) },
	"areCodTVAUE":   func(c Client) fieldValue { return boolValue(c.AreCodTVAUE) },
	"codTVAUE":      func(c Client) fieldValue { return optionalString(c.CodTVAUE) },
	"operatiuneUE":  func(c Client) fieldValue { return boolValue(c.OperatiuneUE) },
	"dividende":     func(c Client) fieldValue { return boolValue(c.Dividende) },
	"salariati":     func(c Client) fieldValue { return stringValue(string(c.Salariati)) },
	"casaDeMarcat":  func(c Client) fieldValue { return boolValue(c.CasaDeMarcat) },
}

// IsClientField reports whether name can be referenced by a rule condition.
func IsClientField(name string) bool {
	_, ok := clientFields[name]
	return ok
}

// ClientFieldNames lists the referenceable attribute names, sorted.
func ClientFieldNames() []string {
	names := make([]string, 0, len(clientFields))
	for name := range clientFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Client) field(name string) fieldValue {
	accessor, ok := clientFields[name]
	if !ok {
		return fieldValue{}
	}
	return accessor(c)
}

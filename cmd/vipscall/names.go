package main

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.Und, cases.NoLower)

// snakeToCamel converts extract_area to ExtractArea
func snakeToCamel(s string) string {
	parts := strings.Split(strings.ReplaceAll(s, "-", "_"), "_")
	for i := range parts {
		parts[i] = title.String(parts[i])
	}
	return strings.Join(parts, "")
}

// goIdentifier converts out_array to outArray, escaping Go keywords
func goIdentifier(name string) string {
	switch name {
	case "type", "func", "map", "range", "select", "case", "default":
		return name + "_"
	}

	r := []rune(snakeToCamel(name))
	if len(r) == 0 {
		return ""
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// goTypeName strips the Vips and Foreign prefixes from a C type name
func goTypeName(cName string) string {
	cName = strings.TrimPrefix(cName, "Vips")
	return strings.TrimPrefix(cName, "Foreign")
}

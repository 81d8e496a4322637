// Package ui holds the presentational primitives used by the templates.
// Each primitive only turns a visual variant into CSS classes; none of them
// carries behaviour.
package ui

import "strings"

type Variant string

const (
	VariantDefault   Variant = "default"
	VariantOutline   Variant = "outline"
	VariantSecondary Variant = "secondary"
)

type Size string

const (
	SizeDefault Size = "default"
	SizeSmall   Size = "sm"
)

// ParseVariant maps unknown values to VariantDefault.
func ParseVariant(s string) Variant {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantOutline, VariantSecondary:
		return v
	default:
		return VariantDefault
	}
}

// ParseSize maps unknown values to SizeDefault.
func ParseSize(s string) Size {
	if Size(strings.ToLower(strings.TrimSpace(s))) == SizeSmall {
		return SizeSmall
	}
	return SizeDefault
}

var buttonVariants = map[Variant]string{
	VariantDefault:   "btn-primary",
	VariantOutline:   "btn-outline",
	VariantSecondary: "btn-secondary",
}

var badgeVariants = map[Variant]string{
	VariantDefault:   "badge-primary",
	VariantOutline:   "badge-outline",
	VariantSecondary: "badge-secondary",
}

// Button returns the classes for a button; extra classes are appended as is.
func Button(variant, size string, extra ...string) string {
	classes := []string{"btn", buttonVariants[ParseVariant(variant)]}
	if ParseSize(size) == SizeSmall {
		classes = append(classes, "btn-sm")
	}
	return join(classes, extra)
}

func Badge(variant string, extra ...string) string {
	return join([]string{"badge", badgeVariants[ParseVariant(variant)]}, extra)
}

func Card(extra ...string) string {
	return join([]string{"card"}, extra)
}

func join(base, extra []string) string {
	for _, e := range extra {
		if e = strings.TrimSpace(e); e != "" {
			base = append(base, e)
		}
	}
	return strings.Join(base, " ")
}

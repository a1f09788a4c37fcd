package interpreter

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mtaka/STN-Core/pkg/runtime"
)

var (
	numberPattern  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datePrefix     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// unwrapLiteral strips the brackets of a "[...]" literal and unescapes "\]".
func unwrapLiteral(atom string) (string, bool) {
	if len(atom) < 2 || atom[0] != '[' || atom[len(atom)-1] != ']' {
		return atom, false
	}
	return strings.ReplaceAll(atom[1:len(atom)-1], `\]`, "]"), true
}

// atomValue converts a free literal: numbers become Number, a bracketed ISO
// date becomes Date, everything else is Text.
func atomValue(atom string) runtime.Value {
	text, bracketed := unwrapLiteral(atom)
	if bracketed {
		if isoDatePattern.MatchString(text) {
			return runtime.DateValue{Val: text}
		}
		return runtime.TextValue{Val: text}
	}
	if num, ok := parseNumber(atom); ok {
		return num
	}
	return runtime.TextValue{Val: atom}
}

// coerceAtom converts a literal under a declared kind. Text that does not
// fit a Number or Date kind is kept as Text. Free literals keep the stricter
// number pattern of atomValue.
func coerceAtom(atom string, kind runtime.PrimitiveKind) runtime.Value {
	switch kind.Tag {
	case runtime.TagNumber:
		text, _ := unwrapLiteral(atom)
		if num, ok := parseKindNumber(text); ok {
			return num
		}
		return runtime.TextValue{Val: text}
	case runtime.TagDate:
		text, _ := unwrapLiteral(atom)
		if datePrefix.MatchString(text) {
			return runtime.DateValue{Val: text}
		}
		return runtime.TextValue{Val: text}
	case runtime.TagEnum:
		text, _ := unwrapLiteral(atom)
		return runtime.EnumValue{Val: text, Choices: kind.Choices}
	default:
		return atomValue(atom)
	}
}

func parseNumber(text string) (runtime.Value, bool) {
	if !numberPattern.MatchString(text) {
		return nil, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, false
	}
	return runtime.NumberValue{Val: f}, true
}

// parseKindNumber accepts any finite float syntax ("1e3", "+5", ".5") for
// values whose kind is declared Number.
func parseKindNumber(text string) (runtime.Value, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return runtime.NumberValue{Val: f}, true
}

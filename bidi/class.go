package bidi

import (
	ucd "golang.org/x/text/unicode/bidi"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Class is the Unicode Bidirectional Algorithm category of a character.
// The values cover the strong, weak and neutral classes of UAX #9 plus the
// explicit formatting characters.
type Class uint8

const (
	// ClassL is a strong left-to-right character.
	ClassL Class = iota
	// ClassR is a strong right-to-left character.
	ClassR
	// ClassAL is a strong Arabic letter.
	ClassAL
	// ClassEN is a European number.
	ClassEN
	// ClassES is a European number separator.
	ClassES
	// ClassET is a European number terminator.
	ClassET
	// ClassAN is an Arabic number.
	ClassAN
	// ClassCS is a common number separator.
	ClassCS
	// ClassNSM is a nonspacing mark.
	ClassNSM
	// ClassBN is a boundary-neutral character (removed by rule X9).
	ClassBN
	// ClassB is a paragraph separator.
	ClassB
	// ClassS is a segment separator.
	ClassS
	// ClassWS is whitespace.
	ClassWS
	// ClassON is any other neutral character.
	ClassON
	// ClassLRE is the left-to-right embedding initiator.
	ClassLRE
	// ClassRLE is the right-to-left embedding initiator.
	ClassRLE
	// ClassLRO is the left-to-right override initiator.
	ClassLRO
	// ClassRLO is the right-to-left override initiator.
	ClassRLO
	// ClassPDF pops a directional embedding or override.
	ClassPDF
	// ClassLRI is the left-to-right isolate initiator.
	ClassLRI
	// ClassRLI is the right-to-left isolate initiator.
	ClassRLI
	// ClassFSI is the first-strong isolate initiator.
	ClassFSI
	// ClassPDI pops a directional isolate.
	ClassPDI

	numClasses
)

// classNames maps Class values to their UAX #9 abbreviations.
var classNames = [numClasses]string{
	ClassL:   "L",
	ClassR:   "R",
	ClassAL:  "AL",
	ClassEN:  "EN",
	ClassES:  "ES",
	ClassET:  "ET",
	ClassAN:  "AN",
	ClassCS:  "CS",
	ClassNSM: "NSM",
	ClassBN:  "BN",
	ClassB:   "B",
	ClassS:   "S",
	ClassWS:  "WS",
	ClassON:  "ON",
	ClassLRE: "LRE",
	ClassRLE: "RLE",
	ClassLRO: "LRO",
	ClassRLO: "RLO",
	ClassPDF: "PDF",
	ClassLRI: "LRI",
	ClassRLI: "RLI",
	ClassFSI: "FSI",
	ClassPDI: "PDI",
}

// String returns the UAX #9 abbreviation of the class.
func (c Class) String() string {
	if c < numClasses {
		return classNames[c]
	}
	return unknownStr
}

// IsStrong reports whether the class is a strong directional type (L, R, AL).
func (c Class) IsStrong() bool {
	return c == ClassL || c == ClassR || c == ClassAL
}

// IsExplicit reports whether the class is an explicit embedding or override
// initiator (LRE, RLE, LRO, RLO).
func (c Class) IsExplicit() bool {
	return c >= ClassLRE && c <= ClassRLO
}

// IsIsolate reports whether the class is an isolate initiator (LRI, RLI, FSI).
func (c Class) IsIsolate() bool {
	return c == ClassLRI || c == ClassRLI || c == ClassFSI
}

// IsRemoved reports whether rule X9 removes the class from further
// processing (embedding and override initiators, PDF, BN).
func (c Class) IsRemoved() bool {
	return c.IsExplicit() || c == ClassPDF || c == ClassBN
}

// isNeutralOrIsolate reports whether the class belongs to the NI set of
// rules N0-N2: neutrals plus isolate initiators and PDI.
func (c Class) isNeutralOrIsolate() bool {
	switch c {
	case ClassB, ClassS, ClassWS, ClassON, ClassLRI, ClassRLI, ClassFSI, ClassPDI:
		return true
	default:
		return false
	}
}

// RTL reports whether the class is a right-to-left strong type.
func (c Class) RTL() bool {
	return c == ClassR || c == ClassAL
}

// ClassifyRune returns the bidi class of a rune, looked up in the Unicode
// character database tables of golang.org/x/text/unicode/bidi.
func ClassifyRune(r rune) Class {
	props, _ := ucd.LookupRune(r)
	return fromUCD(props.Class())
}

// ClassifyString returns one bidi class per rune of s.
func ClassifyString(s string) []Class {
	classes := make([]Class, 0, len(s))
	for _, r := range s {
		classes = append(classes, ClassifyRune(r))
	}
	return classes
}

// fromUCD converts a golang.org/x/text/unicode/bidi class to a Class.
func fromUCD(c ucd.Class) Class {
	switch c {
	case ucd.L:
		return ClassL
	case ucd.R:
		return ClassR
	case ucd.AL:
		return ClassAL
	case ucd.EN:
		return ClassEN
	case ucd.ES:
		return ClassES
	case ucd.ET:
		return ClassET
	case ucd.AN:
		return ClassAN
	case ucd.CS:
		return ClassCS
	case ucd.NSM:
		return ClassNSM
	case ucd.BN:
		return ClassBN
	case ucd.B:
		return ClassB
	case ucd.S:
		return ClassS
	case ucd.WS:
		return ClassWS
	case ucd.LRE:
		return ClassLRE
	case ucd.RLE:
		return ClassRLE
	case ucd.LRO:
		return ClassLRO
	case ucd.RLO:
		return ClassRLO
	case ucd.PDF:
		return ClassPDF
	case ucd.LRI:
		return ClassLRI
	case ucd.RLI:
		return ClassRLI
	case ucd.FSI:
		return ClassFSI
	case ucd.PDI:
		return ClassPDI
	default:
		return ClassON
	}
}

// Direction specifies the base direction of a paragraph.
type Direction int8

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
	// DirectionAuto detects the base direction from the first strong
	// character of the paragraph, defaulting to left-to-right.
	DirectionAuto
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionAuto:
		return "Auto"
	default:
		return unknownStr
	}
}

// baseLevel returns the embedding level implied by an explicit direction.
// DirectionAuto must be resolved before calling.
func (d Direction) baseLevel() uint8 {
	if d == DirectionRTL {
		return 1
	}
	return 0
}

// directionOfLevel returns the strong class implied by an embedding level:
// even levels are left-to-right, odd levels right-to-left.
func directionOfLevel(level uint8) Class {
	if level&1 == 1 {
		return ClassR
	}
	return ClassL
}

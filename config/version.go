package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a Java compliance level. Versions before 9 are numbered by
// their minor component, so "1.5" and "5" are both Version(5).
type Version int

const (
	Java1_3 Version = 3
	Java1_4 Version = 4
	Java5   Version = 5
	Java16  Version = 16
	Java21  Version = 21
)

// ParseVersion parses "1.N" or "N".
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "1."); ok {
		s = rest
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid compliance level %q", s)
	}
	if n < 3 {
		return 0, fmt.Errorf("compliance level %q is not supported", s)
	}
	return Version(n), nil
}

func (v Version) String() string {
	if v < 9 {
		return "1." + strconv.Itoa(int(v))
	}
	return strconv.Itoa(int(v))
}

// Feature is a behaviour that depends on the compliance level.
type Feature int

const (
	// PartialMemberTypeQualification allows a member type reference to be
	// qualified by any enclosing or inherited type, not only the innermost.
	PartialMemberTypeQualification Feature = iota
	// TypeParamTags requires "@param <T>" for type parameters.
	TypeParamTags
	// InlineReturn allows "{@return ...}" in the main description.
	InlineReturn
)

var features = []struct {
	name  string
	since Version
}{
	PartialMemberTypeQualification: {"partially-qualified member type references", Java5},
	TypeParamTags:                  {"@param <T> type parameter completeness", Java5},
	InlineReturn:                   {"inline {@return}", Java16},
}

// Since returns the first compliance level having f.
func (f Feature) Since() Version {
	return features[f].since
}

func (f Feature) String() string {
	return features[f].name
}

// Features returns every compliance-dependent feature.
func Features() []Feature {
	out := make([]Feature, len(features))
	for i := range features {
		out[i] = Feature(i)
	}
	return out
}

// Package config holds the options that decide which doc comment findings
// are reported and at what severity.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/doclint/diag"
	"github.com/dhamidi/doclint/java"
)

// FileName is the configuration file searched for by Find.
const FileName = "doclint.toml"

// Processing selects whether doc comments are looked at at all.
type Processing string

const (
	ProcessingEnabled  Processing = "enabled"
	ProcessingIgnore   Processing = "ignore"
	ProcessingDisabled Processing = "disabled"
)

// Level is the severity configured for a group of findings.
type Level string

const (
	LevelIgnore  Level = "ignore"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

func (l Level) verdict() diag.Verdict {
	switch l {
	case LevelWarning:
		return diag.Warning
	case LevelError:
		return diag.Error
	}
	return diag.Ignore
}

// DeprecatedRef controls reports of references to deprecated symbols. The
// empty value behaves like DeprecatedEnabled.
type DeprecatedRef string

const (
	DeprecatedIgnore   DeprecatedRef = "ignore"
	DeprecatedEnabled  DeprecatedRef = "enabled"
	DeprecatedDisabled DeprecatedRef = "disabled"
)

// DescriptionScope selects the tags that must carry a description.
type DescriptionScope string

const (
	DescriptionNone            DescriptionScope = "none"
	DescriptionReturnTag       DescriptionScope = "return_tag"
	DescriptionAllStandardTags DescriptionScope = "all_standard_tags"
)

// Javadoc is the [javadoc] table.
type Javadoc struct {
	Processing                  Processing       `toml:"processing"`
	Invalid                     Level            `toml:"invalid"`
	InvalidVisibility           string           `toml:"invalid_visibility"`
	DeprecatedRef               DeprecatedRef    `toml:"deprecated_ref"`
	MissingTags                 Level            `toml:"missing_tags"`
	MissingTagsOverriding       bool             `toml:"missing_tags_overriding"`
	MissingTagsVisibility       string           `toml:"missing_tags_visibility"`
	MissingComment              Level            `toml:"missing_comment"`
	MissingCommentOverriding    bool             `toml:"missing_comment_overriding"`
	MissingCommentVisibility    string           `toml:"missing_comment_visibility"`
	MissingDescription          DescriptionScope `toml:"missing_description"`
	DeprecationInDeprecatedCode bool             `toml:"deprecation_in_deprecated_code"`
}

// Config is the immutable configuration of one run. Build values with
// Default, Parse or Load; a Config returned by them has been validated.
type Config struct {
	Compliance string  `toml:"compliance"`
	Javadoc    Javadoc `toml:"javadoc"`

	version  Version
	invalid  java.Visibility
	tags     java.Visibility
	comments java.Visibility
}

// Error is a configuration problem tied to one option.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{
		Compliance: "21",
		Javadoc: Javadoc{
			Processing:               ProcessingEnabled,
			Invalid:                  LevelWarning,
			InvalidVisibility:        "private",
			DeprecatedRef:            DeprecatedEnabled,
			MissingTags:              LevelWarning,
			MissingTagsVisibility:    "public",
			MissingComment:           LevelIgnore,
			MissingCommentVisibility: "public",
			MissingDescription:       DescriptionReturnTag,
		},
	}
	if err := c.validate(); err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a TOML document on top of the defaults. Keys that are not
// options are an error.
func Parse(data string) (*Config, error) {
	c := Default()
	meta, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &Error{Field: undecoded[0].String(), Message: "unknown option"}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Find searches dir and its parents for FileName. It returns "" when there
// is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, FileName)
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate() error {
	v, err := ParseVersion(c.Compliance)
	if err != nil {
		return &Error{Field: "compliance", Message: err.Error()}
	}
	c.version = v

	j := &c.Javadoc
	switch j.Processing {
	case ProcessingEnabled, ProcessingIgnore, ProcessingDisabled:
	default:
		return invalidChoice("javadoc.processing", string(j.Processing), "enabled", "ignore", "disabled")
	}
	for _, l := range []struct {
		field string
		level Level
	}{
		{"javadoc.invalid", j.Invalid},
		{"javadoc.missing_tags", j.MissingTags},
		{"javadoc.missing_comment", j.MissingComment},
	} {
		switch l.level {
		case LevelIgnore, LevelWarning, LevelError:
		default:
			return invalidChoice(l.field, string(l.level), "ignore", "warning", "error")
		}
	}
	switch j.DeprecatedRef {
	case "", DeprecatedIgnore, DeprecatedEnabled, DeprecatedDisabled:
	default:
		return invalidChoice("javadoc.deprecated_ref", string(j.DeprecatedRef), "ignore", "enabled", "disabled")
	}
	switch j.MissingDescription {
	case DescriptionNone, DescriptionReturnTag, DescriptionAllStandardTags:
	default:
		return invalidChoice("javadoc.missing_description", string(j.MissingDescription), "none", "return_tag", "all_standard_tags")
	}

	if c.invalid, err = parseFloor("javadoc.invalid_visibility", j.InvalidVisibility); err != nil {
		return err
	}
	if c.tags, err = parseFloor("javadoc.missing_tags_visibility", j.MissingTagsVisibility); err != nil {
		return err
	}
	if c.comments, err = parseFloor("javadoc.missing_comment_visibility", j.MissingCommentVisibility); err != nil {
		return err
	}
	return nil
}

func parseFloor(field, s string) (java.Visibility, error) {
	if strings.TrimSpace(s) == "" {
		return "", invalidChoice(field, s, "public", "protected", "package", "private")
	}
	v, ok := java.ParseVisibility(s)
	if !ok {
		return "", invalidChoice(field, s, "public", "protected", "package", "private")
	}
	return v, nil
}

func invalidChoice(field, got string, choices ...string) *Error {
	return &Error{Field: field, Message: fmt.Sprintf("invalid value %q, expected one of %s", got, strings.Join(choices, ", "))}
}

// Version returns the parsed compliance level.
func (c *Config) Version() Version {
	return c.version
}

// Supports reports whether the configured compliance level has f.
func (c *Config) Supports(f Feature) bool {
	return c.version >= f.Since()
}

// Disabled reports whether doc comments are not processed at all.
func (c *Config) Disabled() bool {
	return c.Javadoc.Processing == ProcessingDisabled
}

// Describes reports whether the tag named name must have a description.
func (c *Config) Describes(name string) bool {
	switch c.Javadoc.MissingDescription {
	case DescriptionReturnTag:
		return name == "return"
	case DescriptionAllStandardTags:
		return true
	}
	return false
}

// Classify decides the verdict of cat for decl.
func (c *Config) Classify(cat diag.Category, decl *java.Declaration) diag.Verdict {
	j := &c.Javadoc
	if j.Processing == ProcessingDisabled {
		return diag.Suppressed
	}

	var v diag.Verdict
	switch cat.Group() {
	case diag.GroupInvalid:
		if !decl.Visibility.AtLeast(c.invalid) {
			return diag.Suppressed
		}
		v = j.Invalid.verdict()
	case diag.GroupDeprecated:
		if !decl.Visibility.AtLeast(c.invalid) {
			return diag.Suppressed
		}
		if decl.Deprecated && !j.DeprecationInDeprecatedCode {
			return diag.Suppressed
		}
		switch j.DeprecatedRef {
		case DeprecatedDisabled:
			return diag.Suppressed
		case DeprecatedIgnore:
			v = diag.Ignore
		default:
			v = j.Invalid.verdict()
		}
	case diag.GroupMissingTags:
		if decl.IsOverriding() && !j.MissingTagsOverriding {
			return diag.Suppressed
		}
		if !decl.Visibility.AtLeast(c.tags) {
			return diag.Suppressed
		}
		v = j.MissingTags.verdict()
	case diag.GroupMissingComment:
		if decl.IsOverriding() && !j.MissingCommentOverriding {
			return diag.Suppressed
		}
		if !decl.Visibility.AtLeast(c.comments) {
			return diag.Suppressed
		}
		v = j.MissingComment.verdict()
	default:
		v = diag.Warning
	}

	if j.Processing == ProcessingIgnore && v != diag.Suppressed {
		return diag.Ignore
	}
	if cat.WarningOnly() && v == diag.Error {
		return diag.Warning
	}
	return v
}

// String renders c as a TOML document.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return err.Error()
	}
	return sb.String()
}

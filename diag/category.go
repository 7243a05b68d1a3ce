// Package diag holds the doc comment diagnostic catalog and the
// per-declaration reporter.
package diag

// Category identifies one kind of doc comment problem. Every category has a
// message template and belongs to exactly one Group.
type Category int

const (
	CategoryNone Category = iota

	// scanner
	UnterminatedInlineTag
	InvalidTag
	UnknownInlineTag
	UnexpectedTag
	EmptyVerbatimTag
	MissingDescription

	// reference grammar
	MissingSeparator
	MalformedReference
	MissingReference
	InvalidReference
	MalformedLinkReference
	UnexpectedText
	InvalidURLReference
	InvalidParamTagName
	MissingParamName

	// resolution
	UndefinedType
	InvalidMemberTypeQualification
	UndefinedField
	UndefinedMethod
	UndefinedConstructor
	NotApplicableMethod
	NotApplicableConstructor
	AmbiguousReference
	DeprecatedType
	DeprecatedField
	DeprecatedMethod
	DeprecatedConstructor
	UndefinedParam
	NotAnExceptionType
	UndeclaredException

	// rules
	DuplicateParamTag
	DuplicateReturnTag
	DuplicateTag
	MissingParamTag
	MissingThrowsTag
	MissingReturnTag
	MissingComment

	InternalError

	categoryCount
)

// Group selects the configuration options that decide a category's verdict.
type Group int

const (
	GroupInvalid Group = iota
	GroupDeprecated
	GroupMissingTags
	GroupMissingComment
	GroupInternal
)

func (g Group) String() string {
	switch g {
	case GroupInvalid:
		return "invalid"
	case GroupDeprecated:
		return "deprecated"
	case GroupMissingTags:
		return "missing-tags"
	case GroupMissingComment:
		return "missing-comment"
	case GroupInternal:
		return "internal"
	}
	return "unknown"
}

type entry struct {
	id       int
	name     string
	group    Group
	template string
	// warningOnly caps the verdict at warning.
	warningOnly bool
}

var catalog = [categoryCount]entry{
	UnterminatedInlineTag: {1, "unterminated-inline-tag", GroupInvalid, "Javadoc: Missing closing brace for inline tag", false},
	InvalidTag:            {2, "invalid-tag", GroupInvalid, "Javadoc: Invalid tag", false},
	UnknownInlineTag:      {3, "unknown-inline-tag", GroupInvalid, "Javadoc: Unknown inline tag {@{0}}", false},
	UnexpectedTag:         {4, "unexpected-tag", GroupInvalid, "Javadoc: Unexpected tag", false},
	EmptyVerbatimTag:      {5, "empty-verbatim-tag", GroupInvalid, "Javadoc: Description expected after {@{0}}", false},
	MissingDescription:    {6, "missing-description", GroupInvalid, "Javadoc: Description expected after @{0}", false},

	MissingSeparator:       {10, "missing-separator", GroupInvalid, "Javadoc: Malformed reference (missing end space separator)", false},
	MalformedReference:     {11, "malformed-reference", GroupInvalid, "Javadoc: Malformed reference", false},
	MissingReference:       {12, "missing-reference", GroupInvalid, "Javadoc: Missing reference", false},
	InvalidReference:       {13, "invalid-reference", GroupInvalid, "Javadoc: Invalid reference", false},
	MalformedLinkReference: {14, "malformed-link-reference", GroupInvalid, "Javadoc: Malformed link reference", false},
	UnexpectedText:         {15, "unexpected-text", GroupInvalid, "Javadoc: Unexpected text", false},
	InvalidURLReference:    {16, "invalid-url-reference", GroupInvalid, "Javadoc: Invalid URL reference {0}. Double quote the reference or use the href syntax", true},
	InvalidParamTagName:    {17, "invalid-param-tag-name", GroupInvalid, "Javadoc: Invalid param tag name", false},
	MissingParamName:       {18, "missing-param-name", GroupInvalid, "Javadoc: Missing parameter name", false},

	UndefinedType:                  {20, "undefined-type", GroupInvalid, "Javadoc: {0} cannot be resolved to a type", false},
	InvalidMemberTypeQualification: {21, "invalid-member-type-qualification", GroupInvalid, "Javadoc: Invalid member type qualification", false},
	UndefinedField:                 {22, "undefined-field", GroupInvalid, "Javadoc: {0} cannot be resolved or is not a field", false},
	UndefinedMethod:                {23, "undefined-method", GroupInvalid, "Javadoc: The method {0}({1}) is undefined for the type {2}", false},
	UndefinedConstructor:           {24, "undefined-constructor", GroupInvalid, "Javadoc: The constructor {0}({1}) is undefined", false},
	NotApplicableMethod:            {25, "not-applicable-method", GroupInvalid, "Javadoc: The method {0}({1}) in the type {2} is not applicable for the arguments ({3})", false},
	NotApplicableConstructor:       {26, "not-applicable-constructor", GroupInvalid, "Javadoc: The constructor {0}({1}) is not applicable for the arguments ({2})", false},
	AmbiguousReference:             {27, "ambiguous-reference", GroupInvalid, "Javadoc: The method {0} is ambiguous for the type {1}", true},
	DeprecatedType:                 {28, "deprecated-type", GroupDeprecated, "Javadoc: The type {0} is deprecated", false},
	DeprecatedField:                {29, "deprecated-field", GroupDeprecated, "Javadoc: The field {0}.{1} is deprecated", false},
	DeprecatedMethod:               {30, "deprecated-method", GroupDeprecated, "Javadoc: The method {0}({1}) from the type {2} is deprecated", false},
	DeprecatedConstructor:          {31, "deprecated-constructor", GroupDeprecated, "Javadoc: The constructor {0}({1}) is deprecated", false},
	UndefinedParam:                 {32, "undefined-param", GroupInvalid, "Javadoc: Parameter {0} is not declared", false},
	NotAnExceptionType:             {33, "not-an-exception-type", GroupInvalid, "Javadoc: {0} is not an exception type", false},
	UndeclaredException:            {34, "undeclared-exception", GroupInvalid, "Javadoc: Exception {0} is not declared", false},

	DuplicateParamTag:  {40, "duplicate-param-tag", GroupInvalid, "Javadoc: Duplicate tag for parameter", false},
	DuplicateReturnTag: {41, "duplicate-return-tag", GroupInvalid, "Javadoc: Duplicate tag for return type", false},
	DuplicateTag:       {42, "duplicate-tag", GroupInvalid, "Javadoc: Duplicate tag @{0}", false},
	MissingParamTag:    {43, "missing-param-tag", GroupMissingTags, "Javadoc: Missing tag for parameter {0}", false},
	MissingThrowsTag:   {44, "missing-throws-tag", GroupMissingTags, "Javadoc: Missing tag for declared exception {0}", false},
	MissingReturnTag:   {45, "missing-return-tag", GroupMissingTags, "Javadoc: Missing tag for return type", false},
	MissingComment:     {46, "missing-comment", GroupMissingComment, "Javadoc: Missing comment for {0} declaration", false},

	InternalError: {99, "internal-error", GroupInternal, "Internal error while checking {0}: {1}", true},
}

// ID returns the stable numeric template id.
func (c Category) ID() int {
	if !c.valid() {
		return 0
	}
	return catalog[c].id
}

func (c Category) String() string {
	if !c.valid() {
		return "none"
	}
	return catalog[c].name
}

func (c Category) Group() Group {
	if !c.valid() {
		return GroupInternal
	}
	return catalog[c].group
}

func (c Category) Template() string {
	if !c.valid() {
		return ""
	}
	return catalog[c].template
}

// WarningOnly reports whether the category is never raised above warning.
func (c Category) WarningOnly() bool {
	return c.valid() && catalog[c].warningOnly
}

func (c Category) valid() bool {
	return c > CategoryNone && c < categoryCount
}

// Categories returns every category in catalog order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount-1)
	for c := CategoryNone + 1; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// CategoryByName looks a category up by its kebab-case name.
func CategoryByName(name string) (Category, bool) {
	for c := CategoryNone + 1; c < categoryCount; c++ {
		if catalog[c].name == name {
			return c, true
		}
	}
	return CategoryNone, false
}

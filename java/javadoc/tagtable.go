package javadoc

// TagInfo describes how a standard tag may be used.
type TagInfo struct {
	Block  bool
	Inline bool
	// Verbatim tags copy their content uninterpreted.
	Verbatim bool
	// Reference tags carry a reference as their first argument.
	Reference bool
	// Described tags expect description text; used by the
	// all-standard-tags missing description scope.
	Described bool
}

var tagTable = map[string]TagInfo{
	"author":      {Block: true, Described: true},
	"deprecated":  {Block: true, Described: true},
	"exception":   {Block: true, Reference: true, Described: true},
	"hidden":      {Block: true},
	"param":       {Block: true, Reference: true, Described: true},
	"provides":    {Block: true, Reference: true},
	"return":      {Block: true, Inline: true, Described: true},
	"see":         {Block: true, Reference: true},
	"serial":      {Block: true, Described: true},
	"serialData":  {Block: true, Described: true},
	"serialField": {Block: true, Described: true},
	"since":       {Block: true, Described: true},
	"throws":      {Block: true, Reference: true, Described: true},
	"uses":        {Block: true, Reference: true},
	"version":     {Block: true, Described: true},
	"apiNote":     {Block: true},
	"implSpec":    {Block: true},
	"implNote":    {Block: true},

	"code":           {Inline: true, Verbatim: true},
	"docRoot":        {Inline: true},
	"index":          {Inline: true},
	"inheritDoc":     {Inline: true, Reference: true},
	"link":           {Inline: true, Reference: true},
	"linkplain":      {Inline: true, Reference: true},
	"literal":        {Inline: true, Verbatim: true},
	"snippet":        {Inline: true},
	"summary":        {Inline: true},
	"systemProperty": {Inline: true},
	"value":          {Inline: true, Reference: true},
}

// LookupTag returns the usage rules of a standard tag.
func LookupTag(name string) (TagInfo, bool) {
	info, ok := tagTable[name]
	return info, ok
}

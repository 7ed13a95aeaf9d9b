package toon

// Delimiter separates inline array values and tabular row cells.
type Delimiter string

const (
	DelimComma Delimiter = ","
	DelimTab   Delimiter = "\t"
	DelimPipe  Delimiter = "|"
)

func (d Delimiter) valid() bool {
	return d == DelimComma || d == DelimTab || d == DelimPipe
}

// KeyFolding selects how chains of single-key objects are encoded.
type KeyFolding string

const (
	// KeyFoldingNone encodes every object level on its own line.
	KeyFoldingNone KeyFolding = "none"

	// KeyFoldingSafe collapses chains of single-key objects whose keys are
	// plain identifier segments into one dotted key.
	KeyFoldingSafe KeyFolding = "safe"
)

// EncodeOptions configures the encoder. Options are read-only for the
// duration of a call; there is no process-wide default state.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level (default 2, min 1).
	Indent int

	// Delimiter separates inline array values and tabular cells.
	Delimiter Delimiter

	// KeyFolding enables dotted-path folding of single-key object chains.
	KeyFolding KeyFolding

	// FlattenDepth caps how many levels a fold chain may collapse.
	// Nil means unlimited.
	FlattenDepth *int
}

// DefaultEncodeOptions returns the default encoder configuration.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:     2,
		Delimiter:  DelimComma,
		KeyFolding: KeyFoldingNone,
	}
}

// Validate checks the option combination.
func (o EncodeOptions) Validate() error {
	if o.Indent < 1 {
		return &EncodingError{Message: "indent must be >= 1"}
	}
	if !o.Delimiter.valid() {
		return &EncodingError{Message: "delimiter must be comma, tab, or pipe"}
	}
	if o.KeyFolding != KeyFoldingNone && o.KeyFolding != KeyFoldingSafe {
		return &EncodingError{Message: "key folding must be none or safe"}
	}
	if o.FlattenDepth != nil && *o.FlattenDepth < 0 {
		return &EncodingError{Message: "flatten depth must be >= 0"}
	}
	return nil
}

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// Strict enables structural validation: declared array lengths,
	// tabular field counts, duplicate keys, indentation multiples, and
	// malformed numeric literals all become hard failures.
	Strict bool

	// ExpandPaths splits unquoted dotted keys into nested objects,
	// reversing key folding.
	ExpandPaths bool

	// Indent is the expected spaces per nesting level (default 2).
	// Strict mode rejects indentation that is not a multiple of it.
	Indent int
}

// DefaultDecodeOptions returns the default decoder configuration.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Indent: 2}
}

func (o DecodeOptions) normalized() DecodeOptions {
	if o.Indent < 1 {
		o.Indent = 2
	}
	return o
}

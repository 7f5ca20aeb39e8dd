// Package validation turns field metadata and optional per-field options
// into the ordered bean-validation constraints emitted on DTO fields.
package validation

import "strings"

// Constraint kinds used when resolving messages.
const (
	KindRequired = "required"
	KindNotBlank = "notBlank"
	KindNotEmpty = "notEmpty"
	KindEmail    = "email"
	KindSize     = "size"
	KindRange    = "range"
	KindPattern  = "pattern"
	KindPast     = "past"
	KindFuture   = "future"
)

// Default bounds used when option bounds are missing or malformed.
const (
	DefaultMinSize = "0"
	DefaultMaxSize = "255"
	DefaultMin     = "0"
	DefaultMax     = "100"
)

// Option configures the constraints of a single field. A nil *Option means
// "no explicit configuration" and enables the inferred defaults.
type Option struct {
	FieldName string `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
	FieldType string `json:"fieldType,omitempty" yaml:"fieldType,omitempty"`

	Required        bool   `json:"required" yaml:"required"`
	RequiredMessage string `json:"requiredMessage,omitempty" yaml:"requiredMessage,omitempty"`

	NotBlank        bool   `json:"notBlank" yaml:"notBlank"`
	NotBlankMessage string `json:"notBlankMessage,omitempty" yaml:"notBlankMessage,omitempty"`
	NotEmpty        bool   `json:"notEmpty" yaml:"notEmpty"`
	NotEmptyMessage string `json:"notEmptyMessage,omitempty" yaml:"notEmptyMessage,omitempty"`
	Email           bool   `json:"email" yaml:"email"`
	EmailMessage    string `json:"emailMessage,omitempty" yaml:"emailMessage,omitempty"`

	Size        bool   `json:"size" yaml:"size"`
	MinSize     string `json:"minSize,omitempty" yaml:"minSize,omitempty"`
	MaxSize     string `json:"maxSize,omitempty" yaml:"maxSize,omitempty"`
	SizeMessage string `json:"sizeMessage,omitempty" yaml:"sizeMessage,omitempty"`

	Range        bool   `json:"range" yaml:"range"`
	Min          string `json:"min,omitempty" yaml:"min,omitempty"`
	Max          string `json:"max,omitempty" yaml:"max,omitempty"`
	RangeMessage string `json:"rangeMessage,omitempty" yaml:"rangeMessage,omitempty"`

	Pattern        bool   `json:"pattern" yaml:"pattern"`
	PatternValue   string `json:"patternValue,omitempty" yaml:"patternValue,omitempty"`
	PatternMessage string `json:"patternMessage,omitempty" yaml:"patternMessage,omitempty"`

	Past          bool   `json:"past" yaml:"past"`
	PastMessage   string `json:"pastMessage,omitempty" yaml:"pastMessage,omitempty"`
	Future        bool   `json:"future" yaml:"future"`
	FutureMessage string `json:"futureMessage,omitempty" yaml:"futureMessage,omitempty"`

	CustomMessage bool   `json:"customMessage" yaml:"customMessage"`
	Message       string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Options maps field names to their option.
type Options map[string]*Option

// For returns the option of a field, or nil.
func (o Options) For(fieldName string) *Option {
	if o == nil {
		return nil
	}
	return o[fieldName]
}

// NewOption returns an option carrying the default bounds and messages.
func NewOption(fieldName, fieldType string) *Option {
	return &Option{
		FieldName:       fieldName,
		FieldType:       fieldType,
		MinSize:         DefaultMinSize,
		MaxSize:         DefaultMaxSize,
		Min:             DefaultMin,
		Max:             DefaultMax,
		RequiredMessage: "This field is required",
		NotBlankMessage: "This field must not be blank",
		NotEmptyMessage: "This field must not be empty",
		EmailMessage:    "Invalid email address",
		SizeMessage:     "Length must be between {min} and {max} characters",
		RangeMessage:    "Value must be between {min} and {max}",
		PatternMessage:  "Value does not match the required format",
		PastMessage:     "Date must be in the past",
		FutureMessage:   "Date must be in the future",
	}
}

// MessageFor returns the raw message template for a constraint kind. With
// CustomMessage set, every kind resolves to Message.
func (o *Option) MessageFor(kind string) string {
	if o.CustomMessage {
		return o.Message
	}
	defaults := NewOption("", "")
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}

	switch kind {
	case KindRequired:
		return pick(o.RequiredMessage, defaults.RequiredMessage)
	case KindNotBlank:
		return pick(o.NotBlankMessage, defaults.NotBlankMessage)
	case KindNotEmpty:
		return pick(o.NotEmptyMessage, defaults.NotEmptyMessage)
	case KindEmail:
		return pick(o.EmailMessage, defaults.EmailMessage)
	case KindSize:
		return pick(o.SizeMessage, defaults.SizeMessage)
	case KindRange:
		return pick(o.RangeMessage, defaults.RangeMessage)
	case KindPattern:
		return pick(o.PatternMessage, defaults.PatternMessage)
	case KindPast:
		return pick(o.PastMessage, defaults.PastMessage)
	case KindFuture:
		return pick(o.FutureMessage, defaults.FutureMessage)
	default:
		return ""
	}
}

// Resolve returns the final message for a bounded constraint kind. A custom
// message is used verbatim; templates get {min} and {max} substituted.
func (o *Option) Resolve(kind, min, max string) string {
	if o.CustomMessage {
		return o.Message
	}
	return Interpolate(o.MessageFor(kind), min, max)
}

// Interpolate substitutes {min} and {max} in a message template.
func Interpolate(message, min, max string) string {
	return strings.NewReplacer("{min}", min, "{max}", max).Replace(message)
}

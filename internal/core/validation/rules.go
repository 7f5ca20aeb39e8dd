package validation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/entitygen/internal/core/classify"
	"github.com/example/entitygen/internal/models"
)

// DefaultPhonePattern is inferred for phone-like string fields.
const DefaultPhonePattern = "^[0-9]{10,15}$"

var phoneMarkers = []string{"phone", "mobile", "telefone", "celular"}

// paramOrder fixes the order parameters are rendered in.
var paramOrder = []string{"value", "min", "max", "regexp"}

// Constraint is one bean-validation annotation. Params hold Java literal
// text, so string values already carry their quotes.
type Constraint struct {
	Name    string
	Params  map[string]string
	Message string
}

// Annotation renders the constraint as a Java annotation.
func (c Constraint) Annotation() string {
	var parts []string
	for _, key := range paramOrder {
		if v, ok := c.Params[key]; ok {
			parts = append(parts, key+" = "+v)
		}
	}
	parts = append(parts, "message = "+JavaString(c.Message))
	return "@" + c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// RulesFor returns the ordered constraints for a field. option may be nil,
// in which case name based heuristics supply defaults.
func RulesFor(field models.FieldDescriptor, category classify.Category, option *Option) []Constraint {
	var rules []Constraint
	name := field.Name
	lower := strings.ToLower(name)

	primitive := field.IsPrimitive || classify.IsPrimitiveType(field.DeclaredType)
	if !primitive && category != classify.CategoryBoolean {
		required := option == nil
		if option != nil {
			required = option.Required
		}
		if required {
			msg := name + " must not be null"
			if option != nil {
				msg = option.MessageFor(KindRequired)
			}
			rules = append(rules, Constraint{Name: "NotNull", Message: msg})
		}
	}

	switch category {
	case classify.CategoryString:
		rules = append(rules, stringRules(lower, option)...)
	case classify.CategoryNumeric:
		rules = append(rules, numericRules(field, option)...)
	case classify.CategoryTemporal:
		rules = append(rules, temporalRules(lower, option)...)
	case classify.CategoryCollection:
		rules = append(rules, collectionRules(option)...)
	}

	return rules
}

func stringRules(lowerName string, option *Option) []Constraint {
	var rules []Constraint

	if option != nil && option.NotBlank {
		rules = append(rules, Constraint{Name: "NotBlank", Message: option.MessageFor(KindNotBlank)})
	}
	if option != nil && option.NotEmpty {
		rules = append(rules, Constraint{Name: "NotEmpty", Message: option.MessageFor(KindNotEmpty)})
	}

	isEmail := strings.Contains(lowerName, "email")
	if option != nil {
		isEmail = option.Email
	}
	if isEmail {
		msg := "Invalid email address"
		if option != nil {
			msg = option.MessageFor(KindEmail)
		}
		rules = append(rules, Constraint{Name: "Email", Message: msg})
	}

	if option != nil && option.Size {
		rules = append(rules, sizeConstraint(option))
	}

	switch {
	case option != nil && option.Pattern && option.PatternValue != "":
		rules = append(rules, Constraint{
			Name:    "Pattern",
			Params:  map[string]string{"regexp": JavaString(option.PatternValue)},
			Message: option.MessageFor(KindPattern),
		})
	case option == nil && containsAny(lowerName, phoneMarkers):
		rules = append(rules, Constraint{
			Name:    "Pattern",
			Params:  map[string]string{"regexp": JavaString(DefaultPhonePattern)},
			Message: "Invalid phone number",
		})
	}

	return rules
}

func numericRules(field models.FieldDescriptor, option *Option) []Constraint {
	integral := classify.IsIntegral(field.DeclaredType)

	if option == nil {
		msg := field.Name + " must be greater than or equal to 0"
		if integral {
			return []Constraint{{Name: "Min", Params: map[string]string{"value": "0"}, Message: msg}}
		}
		return []Constraint{{Name: "DecimalMin", Params: map[string]string{"value": JavaString("0.0")}, Message: msg}}
	}

	if !option.Range {
		return nil
	}

	min, max := RangeBounds(option, integral)
	msg := option.Resolve(KindRange, min, max)
	if integral {
		return []Constraint{
			{Name: "Min", Params: map[string]string{"value": min}, Message: msg},
			{Name: "Max", Params: map[string]string{"value": max}, Message: msg},
		}
	}
	return []Constraint{
		{Name: "DecimalMin", Params: map[string]string{"value": JavaString(min)}, Message: msg},
		{Name: "DecimalMax", Params: map[string]string{"value": JavaString(max)}, Message: msg},
	}
}

func temporalRules(lowerName string, option *Option) []Constraint {
	var rules []Constraint

	if option != nil {
		if option.Past {
			rules = append(rules, Constraint{Name: "Past", Message: option.MessageFor(KindPast)})
		}
		if option.Future {
			rules = append(rules, Constraint{Name: "Future", Message: option.MessageFor(KindFuture)})
		}
		return rules
	}

	switch {
	case strings.Contains(lowerName, "birth"):
		rules = append(rules, Constraint{Name: "Past", Message: "Birth date must be in the past"})
	case strings.Contains(lowerName, "expiry") || strings.Contains(lowerName, "expiration"):
		rules = append(rules, Constraint{Name: "Future", Message: "Expiry date must be in the future"})
	}
	return rules
}

func collectionRules(option *Option) []Constraint {
	if option == nil {
		return nil
	}

	var rules []Constraint
	if option.NotEmpty {
		rules = append(rules, Constraint{Name: "NotEmpty", Message: option.MessageFor(KindNotEmpty)})
	}
	if option.Size {
		rules = append(rules, sizeConstraint(option))
	}
	return rules
}

func sizeConstraint(option *Option) Constraint {
	min, max := SizeBounds(option)
	return Constraint{
		Name:    "Size",
		Params:  map[string]string{"min": min, "max": max},
		Message: option.Resolve(KindSize, min, max),
	}
}

// SizeBounds parses the size bounds of an option, falling back to 0/255
// for values that are not non-negative integers.
func SizeBounds(option *Option) (string, string) {
	return parseSize(option.MinSize, DefaultMinSize), parseSize(option.MaxSize, DefaultMaxSize)
}

// RangeBounds parses and normalises the range bounds of an option, falling
// back to 0/100 for malformed values. Integral bounds must be whole numbers.
func RangeBounds(option *Option, integral bool) (string, string) {
	return parseBound(option.Min, DefaultMin, integral), parseBound(option.Max, DefaultMax, integral)
}

func parseSize(raw, def string) string {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return def
	}
	return strconv.Itoa(n)
}

func parseBound(raw, def string, integral bool) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if integral && !d.IsInteger() {
		return def
	}
	return d.String()
}

// JavaString quotes s as a Java string literal.
func JavaString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

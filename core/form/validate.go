package form

import (
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/ishanya/ishanya/core"
)

// DefaultMessage is reported for a failing rule without a message.
const DefaultMessage = "invalid value"

const (
	optionTag     = "option"
	notSimilarTag = "notsimilar"

	maxSimilarity = .7
)

var (
	defaultValidatorInit sync.Once
	defaultV             *Validator
)

// RuleFunc checks value against a rule that needs more than the value itself:
// the field definition (options) or the other fields of the state.
type RuleFunc func(field *FieldDef, value, param string, state State) bool

// Validator evaluates schema rules. Tags are go-playground/validator tags
// unless a RuleFunc is registered under the tag name.
type Validator struct {
	validate *validator.Validate

	mu    sync.RWMutex
	rules map[string]RuleFunc
}

func NewValidator(validate *validator.Validate) *Validator {
	v := &Validator{
		validate: validate,
		rules:    make(map[string]RuleFunc),
	}
	v.RegisterRule(optionTag, optionRule)
	v.RegisterRule(notSimilarTag, notSimilarRule)
	return v
}

func defaultValidator() *Validator {
	defaultValidatorInit.Do(func() {
		validate := validator.New()
		translator, _ := ut.New(en.New()).GetTranslator("en")
		core.InitValidators(validate, translator)
		defaultV = NewValidator(validate)
	})
	return defaultV
}

func (v *Validator) RegisterRule(tag string, fn RuleFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rules[tag] = fn
}

func (v *Validator) rule(tag string) (RuleFunc, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	fn, ok := v.rules[tag]
	return fn, ok
}

// Validate never panics: a malformed tag fails its rule.
func (v *Validator) Validate(schema *Schema, state State) ErrorMap {
	errs := make(ErrorMap)
	for i := range schema.Fields {
		fd := &schema.Fields[i]
		value := state[fd.Name]
		for _, r := range fd.Rules {
			if !v.check(fd, r, value, state) {
				errs[fd.Name] = r.message()
				break
			}
		}
	}
	return errs
}

func (v *Validator) check(fd *FieldDef, r Rule, value string, state State) (ok bool) {
	tag, param := splitTag(r.Tag)
	if fn, found := v.rule(tag); found {
		return fn(fd, value, param, state)
	}

	defer func() {
		if rec := recover(); rec != nil {
			ok = false
		}
	}()
	return v.validate.Var(value, r.Tag) == nil
}

func (r Rule) message() string {
	if r.Message == "" {
		return DefaultMessage
	}
	return r.Message
}

func splitTag(tag string) (name, param string) {
	parts := strings.SplitN(tag, "=", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// optionRule checks value is one of the field's options.
func optionRule(fd *FieldDef, value, _ string, _ State) bool {
	for _, opt := range fd.Options {
		if value == opt {
			return true
		}
	}
	return false
}

// notSimilarRule fails when value looks too much like one of the fields named in param.
func notSimilarRule(_ *FieldDef, value, param string, state State) bool {
	value = strings.ToLower(value)
	for _, name := range strings.Fields(param) {
		attr := strings.ToLower(state[name])
		if attr == "" {
			continue
		}
		if similarity(value, attr) >= maxSimilarity {
			return false
		}
		if at := strings.Index(attr, "@"); at > 0 && similarity(value, attr[:at]) >= maxSimilarity {
			return false
		}
	}
	return true
}

func similarity(a, b string) float64 {
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).QuickRatio()
}

package main

import (
	"github.com/AlecAivazis/survey/v2"

	"github.com/ishanya/ishanya/core/form"
)

type question struct {
	Field    *form.FieldDef
	Default  string
	Validate func(string) error
}

type prompter interface {
	Ask(q question) (string, error)
}

// surveyPrompter asks on the terminal.
type surveyPrompter struct{}

func (surveyPrompter) Ask(q question) (string, error) {
	var prompt survey.Prompt
	switch q.Field.Type {
	case form.FieldSelect, form.FieldRadio:
		sel := &survey.Select{Message: q.Field.Label, Options: q.Field.Options}
		if q.Default != "" {
			sel.Default = q.Default
		}
		prompt = sel
	case form.FieldPassword:
		prompt = &survey.Password{Message: q.Field.Label}
	case form.FieldTextarea:
		prompt = &survey.Multiline{Message: q.Field.Label, Default: q.Default}
	default:
		prompt = &survey.Input{Message: q.Field.Label, Default: q.Default}
	}

	var out string
	err := survey.AskOne(prompt, &out, survey.WithValidator(func(ans interface{}) error {
		switch v := ans.(type) {
		case string:
			return q.Validate(v)
		case survey.OptionAnswer:
			return q.Validate(v.Value)
		}
		return nil
	}))
	return out, err
}

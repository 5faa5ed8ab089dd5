package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ishanya/ishanya/core/form"
)

var errInvalidState = errors.New("state is invalid")

func (cli *commandLine) formsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the site forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range cli.forms.Names() {
				schema, _ := cli.forms.Get(name)
				fmt.Fprintf(cli.out, "%-20s %s (%d fields)\n", name, schema.Title, len(schema.Fields))
			}
			return nil
		},
	}
}

func (cli *commandLine) validateCmd() *cobra.Command {
	var formName, file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a YAML or JSON state file against a form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := cli.forms.Get(formName)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			st := make(form.State)
			if err := yaml.Unmarshal(data, &st); err != nil {
				return errors.Wrapf(err, "decoding %s", file)
			}

			errs := schema.Validate(schema.Clean(st))
			if errs.Empty() {
				fmt.Fprintf(cli.out, "%s: valid\n", schema.Name)
				return nil
			}
			for _, fe := range errs.FieldErrors(schema) {
				fmt.Fprintf(cli.out, "%s: %s\n", fe.Field, fe.Error)
			}
			return errInvalidState
		},
	}
	cmd.Flags().StringVar(&formName, "form", "", "form name")
	cmd.Flags().StringVar(&file, "file", "", "state file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("form")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (cli *commandLine) fillCmd() *cobra.Command {
	var formName string
	var submit bool

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := cli.forms.Get(formName)
			if err != nil {
				return err
			}
			if submit {
				for _, fd := range schema.Fields {
					if fd.Type == form.FieldFile {
						return errors.Errorf("form %q takes uploads, submit it from the site", schema.Name)
					}
				}
			}

			st, err := cli.fill(schema)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(masked(schema, st))
			if err != nil {
				return err
			}
			fmt.Fprint(cli.out, string(out))

			if !submit {
				return nil
			}
			fn, err := cli.admissionSvc.Submitter(schema, nil)
			if err != nil {
				return err
			}
			f := form.New(schema)
			f.SetAll(st)
			ctx, cancel := context.WithTimeout(cmd.Context(), cli.conf.SubmitTimeout)
			defer cancel()
			n, err := f.Submit(ctx, fn)
			if n.Title != "" {
				fmt.Fprintf(cli.out, "%s %s\n", n.Title, n.Description)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&formName, "form", "", "form name")
	cmd.Flags().BoolVar(&submit, "submit", false, "submit the form once filled")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

// fill asks every field in order, each answer checked against the rules of its field.
func (cli *commandLine) fill(schema *form.Schema) (form.State, error) {
	st := schema.Defaults()
	for i := range schema.Fields {
		fd := &schema.Fields[i]
		ans, err := cli.prompt.Ask(question{
			Field:   fd,
			Default: st[fd.Name],
			Validate: func(value string) error {
				candidate := st.Clone()
				candidate[fd.Name] = value
				if msg, ok := schema.Validate(schema.Clean(candidate))[fd.Name]; ok {
					return errors.New(msg)
				}
				return nil
			},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "asking %s", fd.Name)
		}
		st[fd.Name] = ans
	}
	return schema.Clean(st), nil
}

func masked(schema *form.Schema, st form.State) form.State {
	out := st.Clone()
	for _, fd := range schema.Fields {
		if fd.Type == form.FieldPassword && out[fd.Name] != "" {
			out[fd.Name] = "********"
		}
	}
	return out
}

package main

import (
	"context"
	"fmt"
	"net/mail"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/admission"
	"github.com/ishanya/ishanya/core/form"
	"github.com/ishanya/ishanya/core/user"
)

const passwordField = "password"

func (cli *commandLine) redirectCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "redirect",
		Short: "Print the dashboard path of a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := user.RedirectPath(core.CleanString(role, true))
			if err != nil {
				return err
			}
			fmt.Fprintln(cli.out, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "one of "+fmt.Sprint(user.AllRoles))
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

// checkPasswordCmd checks a password against the sign-up rules. The password is prompted.
func (cli *commandLine) checkPasswordCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "checkpassword",
		Short: "Check a password against the sign-up rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := cli.forms.Get(admission.FormRegister)
			if err != nil {
				return err
			}

			fmt.Fprint(cli.out, "Enter password:")
			pwd, err := readPasswordFunc(syscall.Stdin)
			fmt.Fprintln(cli.out)
			if err != nil {
				return err
			}
			if len(pwd) == 0 {
				return errHelp
			}

			st := schema.Clean(form.State{"name": name, "email": email, passwordField: string(pwd)})
			if msg, ok := schema.Validate(st)[passwordField]; ok {
				return errors.New(msg)
			}
			fmt.Fprintln(cli.out, "password is acceptable")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "account holder's name")
	cmd.Flags().StringVar(&email, "email", "", "account holder's email")
	return cmd
}

func (cli *commandLine) sendMailCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "sendmail",
		Short: "Send a delivery check email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := mail.ParseAddress(to)
			if err != nil {
				return errors.Wrapf(err, "invalid address %q", to)
			}
			msg := &core.EmailMessage{
				To:           []mail.Address{*addr},
				Subject:      "Delivery check",
				TemplateName: "delivery_check",
				TemplateData: time.Now().Format(time.RFC1123),
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cli.conf.SubmitTimeout)
			defer cancel()
			if err := cli.mailSvc.Send(ctx, msg); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "sent to %s\n", addr.Address)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/admission"
	"github.com/ishanya/ishanya/core/form"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf         *core.Config
	forms        *form.Registry
	mailSvc      core.EmailService
	admissionSvc *admission.Service
	prompt       prompter
	out          io.Writer
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Ishanya site administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(cli.out)
	root.AddCommand(
		cli.formsCmd(),
		cli.validateCmd(),
		cli.fillCmd(),
		cli.redirectCmd(),
		cli.checkPasswordCmd(),
		cli.sendMailCmd(),
	)
	return root
}

func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) < 2 {
		_ = root.Help()
		return errHelp
	}
	root.SetArgs(args[1:])
	return root.Execute()
}

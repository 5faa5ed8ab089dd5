package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/ishanya/ishanya/assets"
	"github.com/ishanya/ishanya/core"
	"github.com/ishanya/ishanya/core/admission"
	"github.com/ishanya/ishanya/core/form"
	emailsvc "github.com/ishanya/ishanya/services/email"
	logsvc "github.com/ishanya/ishanya/services/logger"
	"github.com/ishanya/ishanya/storage/memdb"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	forms, err := form.LoadSchemas(assets.FS, form.NewValidator(validate))
	if err != nil {
		logger.Fatal("loading form schemas", err)
	}
	db, err := memdb.Open()
	if err != nil {
		logger.Fatal("opening store", err)
	}

	var mailSvc core.EmailService
	if conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	cli := commandLine{
		conf:         conf,
		forms:        forms,
		mailSvc:      mailSvc,
		admissionSvc: admission.NewService(conf, mailSvc, memdb.NewDashboardRepository(db), logger),
		prompt:       surveyPrompter{},
		out:          os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/trezcool/opsdesk/core"
	"github.com/trezcool/opsdesk/core/review"
	"github.com/trezcool/opsdesk/storage/database"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up the document store
	store, closer, err := database.OpenStore(conf)
	errAndDie(err)

	var db *sql.DB
	if sqlDB, ok := closer.(*sql.DB); ok {
		db = sqlDB
	}

	// start CLI
	cli := commandLine{
		conf:      conf,
		db:        db,
		reviewSvc: review.NewService(store, core.NewValidator(core.NewTranslator()), review.DefaultQueues()...),
		out:       os.Stdout,
	}
	err = cli.run(os.Args)
	_ = closer.Close()
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

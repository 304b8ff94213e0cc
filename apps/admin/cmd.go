package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	echoapi "github.com/trezcool/opsdesk/apps/api/echo"
	"github.com/trezcool/opsdesk/core"
	"github.com/trezcool/opsdesk/core/review"
)

var (
	errHelp          = errors.New("help provided")
	errNoSQLDatabase = errors.New("migrate needs the postgres store")
)

type commandLine struct {
	conf      *core.Config
	db        *sql.DB // nil with the memory store
	reviewSvc *review.Service
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose command (up, down, redo, status, version...)")
	fmt.Fprintln(cli.out, "  token -role ROLE [-subject SUBJECT] - issue an API token for a role")
	fmt.Fprintln(cli.out, "  resetqueue -name QUEUE - rewind a review queue to its first item")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	tokenRole := tokenCmd.String("role", "", "One of admin, inventory, operations, fleet.")
	tokenSubject := tokenCmd.String("subject", "", "Who the token is issued to. Defaults to the role.")

	resetQueueCmd := flag.NewFlagSet("resetqueue", flag.ContinueOnError)
	resetQueueCmd.SetOutput(cli.out)
	resetQueueName := resetQueueCmd.String("name", "", "The queue name.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if !echoapi.IsRole(*tokenRole) {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenRole, *tokenSubject)
	case "resetqueue":
		if err := resetQueueCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetQueueName == "" {
			resetQueueCmd.Usage()
			return errHelp
		}
		return cli.resetQueue(*resetQueueName)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) token(role, subject string) error {
	if subject == "" {
		subject = role
	}
	token, err := echoapi.GenerateToken(cli.conf, echoapi.GetClaims(cli.conf, subject, role))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}

func (cli *commandLine) resetQueue(name string) error {
	name = core.CleanString(name, true /* lower */)
	progress, err := cli.reviewSvc.Reset(context.Background(), name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "queue %s reset: %d item(s)\n", name, progress.Total)
	return nil
}

package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/opsdesk/apps/api/echo"
	"github.com/trezcool/opsdesk/core"
	"github.com/trezcool/opsdesk/core/review"
	inmemdb "github.com/trezcool/opsdesk/storage/database/inmem"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	conf := &core.Config{AppName: "Opsdesk", SecretKey: "secret", Store: core.StoreMemory}
	conf.Server.JWTExpirationDelta = time.Hour

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	store := inmemdb.NewDocumentStore(db)

	// start CLI
	out := new(bytes.Buffer)
	return &commandLine{
		conf:      conf,
		reviewSvc: review.NewService(store, core.NewValidator(core.NewTranslator()), review.DefaultQueues()...),
		out:       out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			} else if tt.wantErr != nil || tt.wantErrStr != "" {
				t.Errorf("cli.run() error = nil, wantErr %v%s", tt.wantErr, tt.wantErrStr)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, _ := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate without the postgres store", args: []string{"migrate", "up"}, wantErr: errNoSQLDatabase},
	})
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)
	db, err := sql.Open("postgres", "postgres://localhost/opsdesk?sslmode=disable") // never connected
	require.NoError(t, err)
	defer db.Close()
	cli.db = db

	defer func(fn func(*sql.DB, string, ...string) error) { runMigrationsFunc = fn }(runMigrationsFunc)
	runMigrationsFunc = func(db *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCLITests(t, cli, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "0"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	})
}

func Test_commandLine_token(t *testing.T) {
	cli, out := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "no role", args: []string{"token"}, wantErr: errHelp},
		{name: "unknown role", args: []string{"token", "-role", "lol"}, wantErr: errHelp},
	})

	out.Reset()
	require.NoError(t, cli.run([]string{"admin", "token", "-role", echoapi.RoleFleet, "-subject", "alice"}))

	claims := new(echoapi.Claims)
	_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cli.conf.SecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, echoapi.RoleFleet, claims.Role)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "Opsdesk", claims.Issuer)
}

func Test_commandLine_resetQueue(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()

	_, err := cli.reviewSvc.Upload(ctx, review.InventoryQueue.Name, []map[string]interface{}{{review.DescriptionField: "Pens"}})
	require.NoError(t, err)
	_, err = cli.reviewSvc.Decide(ctx, review.InventoryQueue.Name, review.NoPurchase(3))
	require.NoError(t, err)

	runCLITests(t, cli, []cliTest{
		{name: "no name", args: []string{"resetqueue"}, wantErr: errHelp},
		{name: "unknown queue", args: []string{"resetqueue", "-name", "lol"}, wantErr: review.ErrUnknownQueue},
	})

	out.Reset()
	require.NoError(t, cli.run([]string{"admin", "resetqueue", "-name", " Inventory "}))
	assert.Equal(t, "queue inventory reset: 1 item(s)\n", out.String())

	progress, err := cli.reviewSvc.Current(ctx, review.InventoryQueue.Name)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Cursor)
	assert.Equal(t, review.StatusNone, progress.Item.Status())
}

package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/storage/database"
)

var (
	runMigrationFunc = database.RunMigration // mockable

	errNoSQLDatabase = errors.New("migrations need a SQL database engine (sqlite or postgres)")
)

func (cli *commandLine) migrate(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	if cli.db == nil {
		return errNoSQLDatabase
	}
	return runMigrationFunc(context.Background(), cli.db, cli.dbLogger, args[0], args[1:]...)
}

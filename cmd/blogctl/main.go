// Command blogctl performs maintenance that is not exposed over HTTP:
// creating the schema and granting administrator rights.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"blogsite/internal/config"
	"blogsite/internal/database"
	"blogsite/internal/repository"
	"blogsite/internal/service"
)

const usage = `usage: blogctl [-db URL] <command> [flags]

commands:
  migrate               create the tables if they do not exist
  promote -user NAME    make an existing account an administrator
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := config.LoadConfig()

	if err := run(context.Background(), cfg, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string) error {
	globalFlags := flag.NewFlagSet("blogctl", flag.ContinueOnError)
	globalFlags.StringVar(&cfg.DB.URL, "db", cfg.DB.URL, "sql database `url`, see github.com/xo/dburl")
	if err := globalFlags.Parse(args); err != nil {
		return errUsage
	}

	if globalFlags.NArg() == 0 {
		return errUsage
	}

	switch globalFlags.Arg(0) {
	case "migrate":
		db, err := database.ConnectDB(cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		return migrate(db)

	case "promote":
		promoteFlags := flag.NewFlagSet("promote", flag.ContinueOnError)
		username := promoteFlags.String("user", "", "`name` of the account to promote")
		if err := promoteFlags.Parse(globalFlags.Args()[1:]); err != nil {
			return errUsage
		}
		if *username == "" {
			return fmt.Errorf("%w: promote needs -user", errUsage)
		}

		db, err := database.ConnectDB(cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		return promote(ctx, db, *username)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, globalFlags.Arg(0))
	}
}

func migrate(db database.MethodsDB) error {
	return db.RunMigrations()
}

func promote(ctx context.Context, db database.MethodsDB, username string) error {
	services := service.NewService(repository.NewRepository(db.GetDB().DB))

	if err := services.Account.Promote(ctx, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("no account named %q, register it first", username)
		}
		return err
	}

	log.Printf("%s is now an administrator", username)
	return nil
}

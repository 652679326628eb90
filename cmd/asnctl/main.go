package main

import (
	"context"
	"log"
	"os"

	"github.com/asnhub/asndash/internal/cli"
	"github.com/asnhub/asndash/internal/config"
	"github.com/asnhub/asndash/internal/flagx"
	"github.com/asnhub/asndash/internal/identity"
	"github.com/asnhub/asndash/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	store, db, err := identity.OpenSQLiteStore(ctx, cfg.IdentityStorePath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	svc := identity.NewService(store, logging.NewDefault())

	args := flagx.PositionalArgs(os.Args[1:], []string{"-c", "-config", "-i"})

	if err := cli.Run(ctx, svc, args, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

}

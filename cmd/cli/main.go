package main

import (
	"context"
	"log"
	"os"

	"github.com/schoolcloud/identity/internal/buildinfo"
	"github.com/schoolcloud/identity/internal/cli"
	"github.com/schoolcloud/identity/internal/server"
	"github.com/schoolcloud/identity/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	backend, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	cli.NewApp(backend).Run(ctx)

}

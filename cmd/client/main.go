package main

import (
	"context"
	"log"
	"os"

	"github.com/ryabovm/passport/internal/client/cli"
	"github.com/ryabovm/passport/internal/client/config"
)

func main() {

	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app := cli.NewApp(cfg)

	if err := app.Run(context.Background(), args); err != nil {
		log.Fatalf("%v", err)
	}

}

package main

import (
	"context"
	"log"
	"os"

	"github.com/ryabovm/passport/internal/server"
	"github.com/ryabovm/passport/internal/server/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}

package main

import (
	"log"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/cmd/app"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/config"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()
	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	if err = a.Start(); err != nil {
		log.Panic(err)
	}
}

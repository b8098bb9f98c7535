package main

import (
	"github.com/keyduel/core/internal/app"
	"github.com/keyduel/core/internal/config"
)

func main() {
	app.Go(config.Load())
}

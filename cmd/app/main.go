package main

import (
	"github.com/moviepair/core/internal/app"
	"github.com/moviepair/core/internal/config"
)

func main() {
	app.Go(config.Load())
}

// Command groundviz draws the bounding boxes of grounded vision-language model
// answers onto images.
//
// Usage:
//
//	groundviz render --image photo.jpg --text '<p>a knife</p>{<10><10><20><20>}'
//	groundviz parse --text-file answer.txt --width 640 --height 480
//	groundviz serve
//
// Settings come from a YAML file given by --config or GROUNDVIZ_CONFIG. A .env
// file in the working directory is loaded first when present.
package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/ironsheep/groundviz/internal/cli"
)

// Version information, set by ldflags during build.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("failed to load .env", "err", err)
	}

	cli.SetVersion(Version, GitCommit, BuildTime)
	err := fang.Execute(context.Background(), cli.NewRootCmd(),
		fang.WithVersion(Version),
		fang.WithCommit(GitCommit),
	)
	if err != nil {
		os.Exit(1)
	}
}

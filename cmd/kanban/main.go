package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/kanban-backend/config"
	"github.com/GoSim-25-26J-441/kanban-backend/internal/cli"
)

func main() {
	root := cli.NewRootCmd(&cli.App{LoadConfig: config.Load})
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

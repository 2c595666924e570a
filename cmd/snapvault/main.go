package main

import (
	"fmt"
	"os"

	"github.com/offlinefirst/snapvault/internal/cmd"
)

func main() {
	root := cmd.NewRootCommand()
	if err := root.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "snapvault: %v\n", err)
		os.Exit(1)
	}
}

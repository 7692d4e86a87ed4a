package main

import (
	"fmt"
	"os"

	"github.com/rhchat/rhchat-desktop"
)

func main() {
	if err := rhchat.Main(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

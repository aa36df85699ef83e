package main

import (
	"os"

	"github.com/vk4tech/passbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

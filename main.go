package main

import (
	"os"

	"github.com/Super-Rogatory/simple-image-quantization/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

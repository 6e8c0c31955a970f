package main

import (
	"os"

	"go-eix/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

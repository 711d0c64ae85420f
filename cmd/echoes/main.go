package main

import (
	"echoes/internal/cmd"
)

func main() {
	cmd.Run()
}

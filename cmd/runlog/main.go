package main

import "github.com/emiliopalmerini/runlog/internal/cli"

func main() {
	cli.Execute()
}

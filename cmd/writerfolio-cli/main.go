package main

import "github.com/nfrund/writerfolio/cmd/writerfolio-cli/cmd"

func main() {
	cmd.Execute()
}

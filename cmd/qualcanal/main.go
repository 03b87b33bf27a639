package main

import "github.com/qualcanal/qualcanal/internal/cli"

func main() {
	cli.Execute()
}

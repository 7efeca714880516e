package main

import "sripos/internal/cli"

func main() {
	cli.Execute()
}

package main

import "firledger/internal/cli"

func main() {
	cli.Execute()
}

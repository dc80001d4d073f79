package main

import "github.com/forPelevin/ytsnip/internal/cli"

func main() {
	cli.Main()
}

package main

import "github.com/mvp-joe/ubidoc/internal/cli"

func main() {
	cli.Execute()
}

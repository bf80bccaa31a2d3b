package main

import "github.com/krew-solutions/searchspec-go/cmd/searchspec/cmd"

func main() {
	cmd.Execute()
}

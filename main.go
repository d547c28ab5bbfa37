package main

import "github.com/pateldev/github-contributions/cmd"

func main() {
	cmd.Execute()
}

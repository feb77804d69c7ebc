package main

import "certwatch/cmd/certwatch-cli/cmd"

func main() {
	cmd.Execute()
}

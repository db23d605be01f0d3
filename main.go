package main

import "github.com/vuzo-ai/vzdash/cmd"

func main() {
	cmd.Execute()
}

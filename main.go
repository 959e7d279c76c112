package main

import "github.com/bubblehunt/snpcaller/cmd"

func main() {
	cmd.Execute()
}

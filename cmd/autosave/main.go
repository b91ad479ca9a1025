package main

import "github.com/budhip/go-autosave/cmd/autosave/cmd"

func main() {
	cmd.Execute()
}

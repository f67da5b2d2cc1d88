package main

import "github.com/archivo-digital/apiserver/cmd"

func main() {
	cmd.Execute()
}

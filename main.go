package main

import "github.com/phananhtu1998/AI-Agent/cmd"

func main() {
	cmd.Execute()
}

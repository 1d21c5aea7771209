package main

import "github.com/erikdevelopment/portfolio/cmd"

func main() {
	cmd.Execute()
}

package main

import "onepage/cmd/onepage/cmd"

func main() {
	cmd.Execute()
}

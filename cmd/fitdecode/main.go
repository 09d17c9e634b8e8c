package main

import "github.com/thomas-god/fitdecode/cmd/fitdecode/cmd"

func main() {
	cmd.Execute()
}

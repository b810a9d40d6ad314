package main

import "github.com/deepgram/siplog/internal/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/video-club/video-club-api/cmd"
)

func main() {
	cmd.Execute()
}

package main

import (
	"fmt"
	"os"

	"atlas/internal/ipc"
)

func main() {
	cmd := "wake"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if err := ipc.SendCommand(cmd); err != nil {
		fmt.Println("atlas-daemon not running:", err)
		os.Exit(1)
	}
}

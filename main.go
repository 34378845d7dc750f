package main

import (
	"os"

	"github.com/xunholy/bundle-advisor/cmd"
)

func main() {
	f := cmd.NewRootCmd(os.Stdout, os.Args[1:])
	if err := f.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import "github.com/notifykit/templatecache/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/oshokin/morse-beacon/cmd/morse-beacon/cmd"

func main() {
	cmd.Execute()
}

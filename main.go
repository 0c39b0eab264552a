package main

import "github.com/frahmantamala/spendwise-server/cmd"

func main() {
	cmd.Execute()
}

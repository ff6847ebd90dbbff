package main

import "github.com/ValentinKolb/dEnv/cmd"

func main() {
	cmd.Execute()
}

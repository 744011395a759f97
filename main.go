/*
Copyright © 2026 The gaia-project authors
*/
package main

import "github.com/boardgamers/gaia-project-sub000/cmd"

func main() {
	cmd.Execute()
}

/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/suderio/recall/cmd"

func main() {
	cmd.Execute()
}

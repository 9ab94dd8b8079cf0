// Command lexstash is the entry point for the lexstash CLI.
package main

import "github.com/lexstash/lexstash/internal/cli"

func main() {
	cli.Execute()
}

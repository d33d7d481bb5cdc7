// Command talentscout runs the TalentScout hiring assistant in a terminal,
// as an HTTP service or as an MCP server.
package main

func main() {
	Execute()
}

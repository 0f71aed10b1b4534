// Package main provides the kwicketgen CLI, which generates typed kWicket
// builder code for Apache Wicket components.
//
// The CLI supports:
//   - generate: Write config interfaces, config classes, tag classes, tag
//     methods and include methods for every catalogue configuration
//   - validate: Check the catalogue and derive every artifact without writing
//   - catalogue: List the configurations and their inheritance tree
//   - doctor: Run health checks on the generator setup
//
// Settings come from kwicketgen.yaml, discovered by walking up from the
// working directory, and KWICKETGEN_* environment variables. Flags win over
// both.
//
// Usage:
//
//	kwicketgen [flags] <command>
package main

func main() {
	Execute()
}

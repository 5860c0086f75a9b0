// Package cli implements the cheddar command-line tool.
//
// Commands can be given once on the command line
//
//	cheddar -k MY_PRODUCT customer CUST_1
//
// or typed at the interactive prompt that starts when no command is given.
// Every command goes through the models package, so the CLI exercises the
// same lookup, validation and save paths as library callers.
package cli

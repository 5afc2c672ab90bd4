// Package cli implements the serverify command line.
//
// Commands:
//
//	serverify serve    -c mocks.yaml      run the stub HTTP server
//	serverify validate -c 'mocks/**/*.yaml' check endpoint tables without serving
//	serverify version                     print build information
//
// Every invocation builds a fresh command tree, so Run can be called
// repeatedly from tests.
package cli

// Package logging writes structured JSON logs to a size-rotated file under
// ~/.physref/logs and reads them back for the logs command.
//
// Interactive commands may tee logs to stderr. The MCP server never does:
// its stdout and stderr belong to the protocol and the client.
package logging

// Package credentials turns deployment secrets into the service-account
// credential the spreadsheet backend authenticates with.
//
// Secrets arrive in one of three layouts: a flat map of service-account
// fields, the same fields under a namespace such as [connections.gsheets],
// or a key-material field holding the service-account JSON as a string.
// Resolve reduces all of them to a single ServiceAccount and the spreadsheet
// locator that travelled alongside it.
package credentials

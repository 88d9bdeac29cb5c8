// Package fieldchecks holds the checks run once per field of the type
// under test. Each check receives a reference and a changed object that
// start out equal, mutates them and probes the equality and hash methods.
// Checks keep no state between fields.
package fieldchecks

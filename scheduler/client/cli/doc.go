/*
Package cli implements the cpusched command line: replaying scheduler
traces against a configuration and listing the available configurations.
The commands share the SimpleClient of common/client, which carries the
selected configuration, the session id and the stats receiver.
*/
package cli

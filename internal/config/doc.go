// Package config loads and validates simph.json, the project
// configuration file. The file declares the listen address, the routing
// prefixes, the page source, and optionally the route table itself.
package config

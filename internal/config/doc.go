// Package config provides configuration parsing for markup projects.
//
// The configuration is stored in markup.toml or markup.json at the project
// root. When both exist, markup.toml wins. This package handles loading,
// saving, and validating configuration.
//
// # Configuration File Structure
//
//	name = "docs"
//
//	[source]
//	dir = "pages"
//
//	[render]
//	pretty = true
//	indent = "  "
//
//	[serve]
//	host = "localhost"
//	port = 4000
//	live = true
//	metrics = true
//
//	[cache]
//	driver = "redis"
//	url = "redis://localhost:6379/0"
//	ttl = "10m"
//
//	[publish]
//	bucket = "example-site"
//	prefix = "docs/"
//	region = "eu-west-1"
//
// The JSON form uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Address:", cfg.ServeAddress())
package config

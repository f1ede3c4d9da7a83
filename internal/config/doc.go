// Package config loads and watches the cruncher configuration file.
//
// Top-level types:
//   - Config{Cruncher, Fetcher, Server}: full config tree parsed from YAML
//   - CruncherConfig: max_size (tummy capacity), interval (background loop)
//   - FetcherConfig: endpoint, timeout
//   - ServerConfig: http_port
//
// Load(path) reads the YAML file, applies defaults (max_size 3, 10s interval,
// numbersapi.com endpoint, 10s timeout, port 8080), then validates.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config.
package config

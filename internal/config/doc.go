// Package config loads runtime configuration for the cheddar CLI.
//
// # Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config; JSON, or YAML when
//     the name ends in .yaml/.yml.
//  3. Environment: CHEDDAR_URL, CHEDDAR_USERNAME, CHEDDAR_PASSWORD,
//     CHEDDAR_PRODUCT_CODE, CHEDDAR_TIMEOUT (seconds), CHEDDAR_LOG_LEVEL,
//     CHEDDAR_METRICS_ADDR.
//  4. Command-line flags, which override everything else.
//
// # Supported flags
//
//	-s string   API base URL
//	-u string   API username
//	-k string   product code
//	-t int      request timeout (seconds)
//	-l string   log level
//	-m string   metrics listen address
//
// # File schema
//
// Timeouts can be strings like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://cheddargetter.com",
//	  "username": "me@example.com",
//	  "product_code": "MY_PRODUCT",
//	  "timeout": "10s",
//	  "log_level": "info",
//	  "metrics_addr": "127.0.0.1:9464"
//	}
//
// Validation is left to client.Config.Validate so the CLI can still prompt
// for a missing password first.
package config

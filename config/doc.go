// Package config loads fetchkit preset files for programmatic use.
//
// A preset file is YAML (or JSON, which the YAML decoder also reads) with
// optional variables and named presets. A preset may extend another; its
// container is the merge of the whole chain from the root down:
//
//	variables:
//	  host: api.example.com
//	presets:
//	  api:
//	    url: https://{{host}}/v1
//	    init:
//	      headers:
//	        Accept: application/json
//	    options:
//	      resolveAs: json
//	  users:
//	    extends: api
//	    url: users
//
// Loading and resolving a preset:
//
//	cfg, err := config.Load("presets.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	users, err := cfg.Container("users", map[string]string{"host": "localhost:8080"})
//
// Variables given to Container override the file's variables. Load validates
// the file and reports every problem it finds at once.
package config

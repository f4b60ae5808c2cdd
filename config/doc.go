// Package config loads service settings with viper.
//
// Sources, lowest precedence first: built-in defaults, config.yaml (from
// --config or the search paths ., ./config, $HOME/.jobportal, /etc/jobportal),
// a .env file, then environment variables prefixed with JOBPORTAL_ where dots
// become underscores:
//
//	JOBPORTAL_SERVER_PORT=8080
//	JOBPORTAL_AUTH_PROVIDER=hmac
//	JOBPORTAL_AUTH_HMAC_SECRET=dev-secret
//
// PORT, DB_USER, DB_PASS and FIREBASE_PROJECT_ID are honoured as aliases.
//
// Example YAML:
//
//	app_name: jobportal
//	run_mode: release
//	server:
//	  port: 3000
//	data:
//	  mongodb:
//	    uri: mongodb+srv://cluster0.example.mongodb.net/?retryWrites=true&w=majority
//	    database: jobportal
//	auth:
//	  provider: firebase
//	  firebase:
//	    project_id: career-code
//	logger:
//	  level: 4
//	  format: json
//	application:
//	  statuses: [pending, reviewing, interview, hired, rejected]
package config

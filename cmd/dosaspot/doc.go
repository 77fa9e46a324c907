// Command dosaspot runs and administers the Dosa Point backend.
//
//	dosaspot serve             # migrate, seed if empty, serve HTTP + gRPC
//	dosaspot migrate           # run pending migrations
//	dosaspot migrate:rollback
//	dosaspot migrate:status
//	dosaspot seed              # load DATA_DIR/menu.json and banners.json
//	dosaspot route:list
//	dosaspot password:hash     # bcrypt a value for ADMIN_PASSWORD
package main

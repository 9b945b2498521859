// Package server provides the values API as an embeddable HTTP server.
//
// # Basic Usage
//
//	srv, err := server.New(&server.Config{
//		Server: server.ServerConfig{
//			Port:         8080,
//			ReadTimeout:  30 * time.Second,
//			WriteTimeout: 30 * time.Second,
//		},
//		Logging: server.LoggingConfig{
//			Level:  "info",
//			Format: "json",
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := srv.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Embedding
//
// Mount the API inside an existing router instead of calling Start:
//
//	mux := http.NewServeMux()
//	mux.Handle("/deals/", http.StripPrefix("/deals", srv.Handler()))
//
// # Direct Access
//
// The controller can be called without going through HTTP:
//
//	status := srv.Controller().GetDealStatus(30)
//
// # Routes
//
//	GET /health                       -> {"status":"ok"}
//	GET /api/values/{id}              -> {"value":"value <id>"}
//	GET /api/values/{id}/dealstatus   -> {"id":<id>,"status":"shipped"|"processing"}
package server

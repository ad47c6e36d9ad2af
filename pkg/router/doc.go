// Package router holds the static route table served for plain HTTP requests.
//
// A Table is built once at startup and never modified, so it can be shared by
// every connection without locking. Lookups are exact matches on the request
// target with any query string removed.
//
// Example usage:
//
//	table, err := router.Load(os.DirFS("templates"), map[string]string{
//	    "/": "home.html",
//	})
//	route, err := table.Lookup(req.Target)
package router

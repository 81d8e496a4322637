// Command megamart runs the MegaMart storefront.
//
//	megamart serve                      # start the HTTP server (alias: run, start)
//	megamart route:list                 # list named routes
//	megamart product:show 3 --discount 10
//	megamart catalog:list               # print the home page cards
//	megamart catalog:warm               # load every product into the cache
//
// Configuration comes from config/app.json, .env and the environment, in
// that order of precedence (environment wins).
package main

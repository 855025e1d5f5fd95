// Command cvaserver exposes the CVA engine over HTTP.
//
//	POST /cva                  run an analysis (JSON, desk units)
//	GET  /counterparties       list credit reference entries
//	GET  /counterparties/:name look up one entry
//	GET  /health               liveness and cache status
//
// Results are cached by request digest (analyses are deterministic for a
// given seed). With -redis unset an in-process cache is used; with -pg unset
// the embedded counterparty fixtures serve as the credit feed.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meenmo/cvalib/cmd/cvaserver/internal/api"
	"github.com/meenmo/cvalib/marketdata"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	redisAddr := flag.String("redis", "", "redis address for the result cache (empty: in-process cache)")
	pgDSN := flag.String("pg", "", "postgres DSN for counterparty credit data (empty: embedded fixtures)")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "result cache TTL")
	flag.Parse()

	var cache api.ResultCache = api.NewMemoryCache()
	if *redisAddr != "" {
		cache = api.NewRedisCache(*redisAddr, *cacheTTL)
	}

	var feed marketdata.CreditFeed = marketdata.DefaultCreditFeed()
	if *pgDSN != "" {
		pg, err := marketdata.OpenPostgres(*pgDSN)
		if err != nil {
			log.Fatalf("cvaserver: %v", err)
		}
		defer pg.Close()
		feed = pg
	}

	router := gin.Default()
	api.SetupRoutes(router, api.NewHandlers(cache, feed))

	log.Printf("cvaserver listening on %s (cache=%s)", *addr, cache.Name())
	if err := router.Run(*addr); err != nil {
		log.Fatalf("cvaserver: %v", err)
	}
}

package handler

import (
	"net/http"

	"github.com/nmehta6/shopassist/internal/api/response"
	"github.com/nmehta6/shopassist/internal/repository/mongo"
	"github.com/nmehta6/shopassist/internal/repository/redis"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including datastore connectivity
func ReadyCheck(db *mongo.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database not ready")
			return
		}
		if err := redisClient.Client().Ping(r.Context()).Err(); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "redis not ready")
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}

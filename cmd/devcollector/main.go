// devcollector is a local stand-in for a real diagnostic collector. It
// accepts POSTed payloads, logs them, and answers 202. Point
// FAULTGATE_COLLECTOR_ENDPOINT at it during development.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := os.Getenv("DEVCOLLECTOR_PORT")
	if port == "" {
		port = "9090"
	}

	http.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logger.Warn("undecodable diagnostic", slog.String("error", err.Error()))
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		attrs := []slog.Attr{}
		for _, key := range []string{"boardId", "message", "exceptionType", "requestPath", "requestMethod", "line"} {
			if v, ok := payload[key]; ok && v != nil {
				attrs = append(attrs, slog.String(key, fmt.Sprint(v)))
			}
		}
		logger.LogAttrs(r.Context(), slog.LevelInfo, "diagnostic received", attrs...)

		w.WriteHeader(http.StatusAccepted)
	})

	logger.Info("devcollector listening", slog.String("port", port))
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

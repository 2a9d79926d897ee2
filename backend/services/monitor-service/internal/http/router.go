package httpserver

import (
	"net/http"
	"sort"
	"strings"
)

// Routes groups HTTP handlers. Nil handlers are not registered.
type Routes struct {
	ReadingsCreate http.HandlerFunc
	ReadingsList   http.HandlerFunc
	ReadingsLatest http.HandlerFunc
	PricingGet     http.HandlerFunc
	PricingUpdate  http.HandlerFunc
	CostCalculate  http.HandlerFunc
	CostRealtime   http.HandlerFunc
	Summary        http.HandlerFunc
	DeviceSocket   http.HandlerFunc
	Metrics        http.Handler
	Health         http.HandlerFunc
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()

	readings := map[string]http.HandlerFunc{}
	if routes.ReadingsList != nil {
		readings[http.MethodGet] = routes.ReadingsList
	}
	if routes.ReadingsCreate != nil {
		readings[http.MethodPost] = routes.ReadingsCreate
		// Path used by the ESP32 firmware.
		mux.Handle("/api/readings/update", method(http.MethodPost, routes.ReadingsCreate))
	}
	if len(readings) > 0 {
		mux.Handle("/api/readings", methods(readings))
	}
	if routes.ReadingsLatest != nil {
		mux.Handle("/api/readings/latest", method(http.MethodGet, routes.ReadingsLatest))
	}
	if routes.PricingGet != nil {
		mux.Handle("/api/pricing-slabs", method(http.MethodGet, routes.PricingGet))
		mux.Handle("/api/pricing/pricing-slabs", method(http.MethodGet, routes.PricingGet))
	}
	if routes.PricingUpdate != nil {
		mux.Handle("/api/pricing/update", method(http.MethodPost, routes.PricingUpdate))
	}
	if routes.CostCalculate != nil {
		mux.Handle("/api/cost/calculate", method(http.MethodPost, routes.CostCalculate))
	}
	if routes.CostRealtime != nil {
		mux.Handle("/api/cost/realtime", method(http.MethodGet, routes.CostRealtime))
	}
	if routes.Summary != nil {
		mux.Handle("/api/summary", method(http.MethodGet, routes.Summary))
	}
	if routes.DeviceSocket != nil {
		mux.Handle("/ws/readings", method(http.MethodGet, routes.DeviceSocket))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return methods(map[string]http.HandlerFunc{expected: handler})
}

func methods(handlers map[string]http.HandlerFunc) http.HandlerFunc {
	allowed := make([]string, 0, len(handlers))
	for m := range handlers {
		allowed = append(allowed, m)
	}
	sort.Strings(allowed)
	allow := strings.Join(allowed, ", ")

	return func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			w.Header().Set("Allow", allow)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/robert-bryson/rsmb.tv/flightdata"
	"github.com/robert-bryson/rsmb.tv/flightstats"
	"github.com/robert-bryson/rsmb.tv/flightviz"
	"github.com/robert-bryson/rsmb.tv/pkg/cache"
	"github.com/robert-bryson/rsmb.tv/pkg/health"
	"github.com/robert-bryson/rsmb.tv/pkg/logger"
	"github.com/robert-bryson/rsmb.tv/sheetsync"
)

// parseFilter builds the engine filter from query parameters. A present
// but empty airline parameter is a real filter (flights logged with no
// airline); an absent one is a no-op.
func parseFilter(c *gin.Context) (flightstats.Filter, error) {
	var f flightstats.Filter
	query := c.Request.URL.Query()

	if raw := query.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return f, err
		}
		f.Year = &year
	}
	if query.Has("airline") {
		airline := query.Get("airline")
		f.Airline = &airline
	}
	if raw := query.Get("airport"); raw != "" {
		airport := strings.ToUpper(raw)
		f.Airport = &airport
	}
	return f, nil
}

// GetAirports returns a handler for the full airport catalog.
func GetAirports(store *flightdata.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.AirportList())
	}
}

// GetVisitedAirports returns a handler for the visited-airport index,
// busiest first.
func GetVisitedAirports(store *flightdata.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.VisitedList())
	}
}

// GetFlights returns a handler for the filtered flight list.
func GetFlights(store *flightdata.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
			return
		}
		_, flights, _ := store.Snapshot()
		c.JSON(http.StatusOK, filter.Apply(flights))
	}
}

// GetYears returns a handler for the distinct years in the full log.
func GetYears(store *flightdata.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Years())
	}
}

// GetRoutes returns a handler for the route ranking. scope=filtered
// ranks only what the current filters keep in view; the default scope
// is the full log.
func GetRoutes(store *flightdata.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
			return
		}

		top := 0
		if raw := c.Query("top"); raw != "" {
			top, err = strconv.Atoi(raw)
			if err != nil || top < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top parameter"})
				return
			}
		}

		_, flights, _ := store.Snapshot()
		if c.Query("scope") == "filtered" {
			flights = filter.Apply(flights)
		}
		index := flightstats.BuildRouteIndex(flights)
		c.JSON(http.StatusOK, flightstats.TopRoutes(index, top))
	}
}

// GetStats returns a handler for the statistics summary. Responses are
// cached per filter combination when a cache manager is configured.
func GetStats(store *flightdata.Store, cm *cache.CacheManager, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
			return
		}

		key := cache.StatsKey(filter.Year, filter.Airline, filter.Airport)
		if cm != nil {
			var cached flightstats.FlightStatistics
			if err := cm.GetJSON(c.Request.Context(), key, &cached); err == nil {
				c.JSON(http.StatusOK, &cached)
				return
			} else if err != cache.ErrCacheMiss {
				logger.Error(err, "Stats cache read failed", "key", key)
			}
		}

		catalog, flights, visited := store.Snapshot()
		stats := flightstats.Aggregate(filter.Apply(flights), catalog, visited, filter)

		if cm != nil {
			if err := cm.SetJSON(c.Request.Context(), key, stats, ttl); err != nil {
				logger.Error(err, "Stats cache write failed", "key", key)
			}
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GetGlobe returns a handler for the renderer payload: arcs and points
// for the current filter, color mode, and selection. Responses are
// cached per parameter combination when a cache manager is configured.
func GetGlobe(store *flightdata.Store, cm *cache.CacheManager, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, err := parseFilter(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter: " + err.Error()})
			return
		}

		mode := flightviz.ParseColorMode(c.Query("mode"))
		sel := flightviz.Selection{
			AirportCode: strings.ToUpper(c.Query("selected")),
			RouteKey:    strings.ToUpper(c.Query("route")),
		}

		selection := sel.AirportCode
		if sel.RouteKey != "" {
			selection += "|" + sel.RouteKey
		}
		key := cache.GlobeKey(filter.Year, filter.Airline, filter.Airport, string(mode), selection)
		if cm != nil {
			var cached flightviz.Globe
			if err := cm.GetJSON(c.Request.Context(), key, &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			} else if err != cache.ErrCacheMiss {
				logger.Error(err, "Globe cache read failed", "key", key)
			}
		}

		_, flights, visited := store.Snapshot()
		fullIndex := flightstats.BuildRouteIndex(flights)
		globe := flightviz.Project(filter.Apply(flights), visited, fullIndex, mode, sel)

		if cm != nil {
			if err := cm.SetJSON(c.Request.Context(), key, globe, ttl); err != nil {
				logger.Error(err, "Globe cache write failed", "key", key)
			}
		}
		c.JSON(http.StatusOK, globe)
	}
}

// RefreshData returns the admin handler that triggers a sheet sync.
func RefreshData(svc *sheetsync.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sheet sync is not configured"})
			return
		}
		report, err := svc.Run(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// GetHealth returns the health report handler.
func GetHealth(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := svc.Report(c.Request.Context())
		status := http.StatusOK
		if report.Status == health.StatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	}
}

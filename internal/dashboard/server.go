// Package dashboard serves trend charts over previously saved scrapes.
package dashboard

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"go.uber.org/zap"

	"github.com/trendlab/subreddit-trends/internal/catalog"
	"github.com/trendlab/subreddit-trends/internal/domain"
	"github.com/trendlab/subreddit-trends/internal/storage"
)

// maxChartEntries bounds how many catalog entries one page load considers.
const maxChartEntries = 200

// Server renders score trends and post-type distributions from the scrape
// catalog. Row-level charts read parquet files back, so only local-backend
// entries feed them; object-store saves still show up in the listing.
type Server struct {
	catalog *catalog.Catalog
}

func NewServer(cat *catalog.Catalog) *Server {
	return &Server{catalog: cat}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleCharts)
	r.GET("/api/scrapes", s.handleScrapes)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// handleScrapes lists catalog entries as JSON, optionally filtered by
// subreddit.
func (s *Server) handleScrapes(c *gin.Context) {
	entries, err := s.catalog.List(c.Request.Context(), catalog.Filter{
		Subreddit: c.Query("subreddit"),
		Limit:     maxChartEntries,
	})
	if err != nil {
		zap.L().Error("list scrapes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"scrapes": entries})
}

func (s *Server) handleCharts(c *gin.Context) {
	all, err := s.catalog.List(c.Request.Context(), catalog.Filter{Limit: maxChartEntries})
	if err != nil {
		zap.L().Error("list scrapes", zap.Error(err))
		c.String(http.StatusInternalServerError, "catalog unavailable")
		return
	}

	scores, tokens, typeCounts := s.loadSeries(all)

	// 1. Scrape Coverage
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Scrape Coverage"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	subCounts := make(map[string]int)
	for _, e := range all {
		subCounts[e.Subreddit]++
	}

	var pieItems []opts.PieData
	for k, v := range subCounts {
		pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
	}
	pie.AddSeries("Scrapes", pieItems)

	// 2. Top Score Trend
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Score per Scrape"}))
	line.SetXAxis(tokens)
	for _, sub := range sortedKeys(scores) {
		var points []opts.LineData
		for _, token := range tokens {
			if v, ok := scores[sub][token]; ok {
				points = append(points, opts.LineData{Value: v})
			} else {
				points = append(points, opts.LineData{Value: nil})
			}
		}
		line.AddSeries(sub, points)
	}

	// 3. Post Type Distribution
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Post Type Distribution"}))

	var barX []string
	var barY []opts.BarData
	for _, pt := range []domain.PostType{domain.PostTypeImageGallery, domain.PostTypeSingleImage, domain.PostTypeOther} {
		barX = append(barX, string(pt))
		barY = append(barY, opts.BarData{Value: typeCounts[pt]})
	}
	bar.SetXAxis(barX).AddSeries("Rows", barY)

	c.Status(http.StatusOK)
	pie.Render(c.Writer)
	line.Render(c.Writer)
	bar.Render(c.Writer)
}

// loadSeries reads the tables behind local entries and aggregates the chart
// inputs: the best score per subreddit per fetch token, the sorted token
// axis, and the post-type tally across all rows. Unreadable files are
// logged and skipped.
func (s *Server) loadSeries(entries []catalog.Entry) (map[string]map[string]int64, []string, map[domain.PostType]int) {
	scores := make(map[string]map[string]int64)
	typeCounts := make(map[domain.PostType]int)
	tokenSet := make(map[string]struct{})

	for _, e := range entries {
		if e.Backend != "local" {
			continue
		}
		table, err := storage.ReadTableFile(e.Location)
		if err != nil {
			zap.L().Warn("skipping unreadable scrape",
				zap.String("location", e.Location), zap.Error(err))
			continue
		}

		var best int64
		for _, row := range table.Rows() {
			typeCounts[row.PostType]++
			if row.Score > best {
				best = row.Score
			}
		}
		if table.Empty() {
			continue
		}

		if scores[e.Subreddit] == nil {
			scores[e.Subreddit] = make(map[string]int64)
		}
		scores[e.Subreddit][e.FetchedAt] = best
		tokenSet[e.FetchedAt] = struct{}{}
	}

	tokens := make([]string, 0, len(tokenSet))
	for t := range tokenSet {
		tokens = append(tokens, t)
	}
	// Token layout sorts chronologically as text.
	sort.Strings(tokens)

	return scores, tokens, typeCounts
}

func sortedKeys(m map[string]map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

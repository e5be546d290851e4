// ABOUTME: Serve command hosting the local viewer.
// ABOUTME: Shell requests go through the offline cache; meal data is read from SQLite.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mealog/mealog/internal/assetcache"
	"github.com/mealog/mealog/internal/db"
	"github.com/mealog/mealog/internal/models"
	"github.com/spf13/cobra"
)

// shellAssets is the fixed precache set for one shell generation.
var shellAssets = []string{
	"/",
	"/manifest.json",
	"/icons/icon-192.png",
	"/icons/icon-512.png",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local viewer",
	Long: `Serve the viewer shell and a read-only JSON API for meal data. Shell assets are
precached per version tag and served offline; meal data always comes from the local store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origin, _ := cmd.Flags().GetString("origin")
		if origin == "" {
			origin = cfg.ShellOrigin
		}
		if origin == "" {
			return fmt.Errorf("no shell origin configured (--origin or shell_origin in config)")
		}

		cache, err := assetcache.Open(cfg.CacheDir, origin, nil)
		if err != nil {
			return err
		}
		defer func() { _ = cache.Close() }()

		if err := cache.Activate(cmd.Context(), cfg.ShellVersion, shellAssets); err != nil {
			// A failed precache with a previously active generation still
			// serves; with none at all there is nothing to fall back to.
			if cache.State() != assetcache.StateActive {
				return fmt.Errorf("failed to activate shell %s: %w", cfg.ShellVersion, err)
			}
			fmt.Printf("Warning: shell %s not activated, serving %s: %v\n", cfg.ShellVersion, cache.Version(), err)
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/api/meals", handleMeals)
		mux.HandleFunc("/api/dates", handleDates)
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			serveShell(cache, w, r)
		})

		fmt.Printf("Serving on %s (shell %s)\n", addr, cache.Version())
		return http.ListenAndServe(addr, mux)
	},
}

func serveShell(cache *assetcache.Cache, w http.ResponseWriter, r *http.Request) {
	var body []byte
	var err error
	if r.URL.Path == "/" || r.URL.Path == "/index.html" {
		body, err = cache.Navigate(r.Context(), "/")
	} else {
		body, err = cache.Asset(r.Context(), r.URL.Path)
	}
	if errors.Is(err, assetcache.ErrOffline) {
		http.Error(w, "offline", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	_, _ = w.Write(body)
}

type mealJSON struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
	Images    int    `json:"images"`
}

func handleMeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var meals []*models.Meal
	var err error
	switch {
	case q.Get("date") != "":
		meals, err = db.GetByDate(dbConn, q.Get("date"))
	case q.Get("start") != "" && q.Get("end") != "":
		meals, err = db.GetRange(dbConn, q.Get("start"), q.Get("end"))
	default:
		meals, err = db.GetAll(dbConn)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]mealJSON, 0, len(meals))
	for _, m := range meals {
		out = append(out, mealJSON{
			ID:        m.ID.String(),
			Type:      string(m.Type),
			Notes:     m.Notes,
			Date:      m.Date,
			Timestamp: m.Timestamp,
			Images:    len(m.Images),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func handleDates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		http.Error(w, "start and end are required", http.StatusBadRequest)
		return
	}

	dates, err := db.DatesWithRecords(dbConn, start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dates)
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:7365", "listen address")
	serveCmd.Flags().String("origin", "", "base URL the shell assets are fetched from")
	rootCmd.AddCommand(serveCmd)
}

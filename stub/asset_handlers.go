package stub

import (
	"net/http"
	"time"

	"github.com/assetdesk/assetdesk/api"
)

func (s *server) listAssets(domain string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		assets := s.assets[domain]
		s.mu.Unlock()

		respond(w, http.StatusOK, assets, "Assets fetched successfully")
	}
}

func seedAssets() map[string][]api.Asset {
	listed := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)

	mk := func(id, title, desc, category string, price float64, location string) api.Asset {
		return api.Asset{
			ID:          id,
			Title:       title,
			Description: desc,
			Category:    category,
			Price:       price,
			Currency:    "CHF",
			Location:    location,
			ImageURL:    "https://cdn.assetmart.example/assets/" + id + ".jpg",
			Status:      "available",
			CreatedAt:   listed,
			UpdatedAt:   listed,
		}
	}

	return map[string][]api.Asset{
		"gold": {
			mk("gold-1", "Gold bar 100g", "PAMP Suisse minted bar, sealed", "gold", 7400, "Zurich"),
			mk("gold-2", "Gold Vreneli 20 Fr", "Swiss classic coin, 1935", "gold", 620, "Bern"),
		},
		"cryptocurrency": {
			mk("crypto-1", "0.25 BTC", "Escrowed over-the-counter sale", "cryptocurrency", 21500, "Zug"),
			mk("crypto-2", "5 ETH", "Cold-wallet transfer on settlement", "cryptocurrency", 14800, "Zug"),
		},
		"real-estate": {
			mk("re-1", "3.5-room apartment", "Renovated 2019, lake view", "real-estate", 1250000, "Lucerne"),
			mk("re-2", "Building plot 900m2", "Fully serviced, zoned W2", "real-estate", 540000, "Fribourg"),
		},
		"vehicles": {
			mk("veh-1", "Audi A4 Avant 2.0", "92k km, fresh service", "vehicles", 23900, "Basel"),
			mk("veh-2", "Vespa GTS 300", "First hand, 4k km", "vehicles", 5200, "Lugano"),
		},
		"properties": {
			mk("prop-1", "Underground parking slot", "City center, gated", "properties", 45000, "Geneva"),
			mk("prop-2", "Wine cellar 18m2", "Climate controlled", "properties", 62000, "Sion"),
		},
	}
}

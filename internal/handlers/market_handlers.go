package handlers

import (
	"net/http"

	"greenpatch/internal/engine/actors"
	"greenpatch/internal/models"
)

// HandleMarketplace lists catalogue items, filtered by ?type=.
func (s *Server) HandleMarketplace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		result, err := s.Engine.Request(s.Engine.GetMarketActor(), &actors.GetMarketItemsMsg{Type: r.URL.Query().Get("type")})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// HandleOrders lists, places and removes marketplace orders.
func (s *Server) HandleOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		market := s.Engine.GetMarketActor()
		switch r.Method {
		case http.MethodGet:
			result, err := s.Engine.Request(market, &actors.GetOrdersMsg{})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)

		case http.MethodPost:
			var order models.MarketplaceOrder
			if !decodeJSON(w, r, &order) {
				return
			}
			result, err := s.Engine.Request(market, &actors.AddOrderMsg{Order: order})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, result)

		case http.MethodDelete:
			id, ok := parseID(w, r.URL.Query().Get("id"), "order ID")
			if !ok {
				return
			}
			result, err := s.Engine.Request(market, &actors.DeleteOrderMsg{OrderID: id})
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, result)

		default:
			methodNotAllowed(w)
		}
	}
}
